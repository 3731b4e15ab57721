package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"docvault_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationCriteria struct {
	Limit      int  `form:"limit" binding:"min=0,max=100"`
	Offset     int  `form:"offset" binding:"min=0"`
	UnreadOnly bool `form:"unread_only"`
}

type UserNotificationRepository interface {
	Create(n *models.UserNotification) error
	FindByID(id string) (*models.UserNotification, error)
	FindByUser(userID string, criteria NotificationCriteria) ([]models.UserNotification, int64, error)

	// ExistsForDay is the dedup guard: reports whether a notification
	// with the same (user, document, type) was already created during
	// the calendar day containing at.
	ExistsForDay(userID, documentID, notificationType string, at time.Time) (bool, error)

	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) error
	Delete(id string) error
	DeleteReadOlderThan(cutoff time.Time) (int64, error)
}

type UserNotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewUserNotificationRepository(db *gorm.DB) UserNotificationRepository {
	return &UserNotificationRepositoryImpl{db: db}
}

func (r *UserNotificationRepositoryImpl) Create(n *models.UserNotification) error {
	return r.db.Create(n).Error
}

func (r *UserNotificationRepositoryImpl) FindByID(id string) (*models.UserNotification, error) {
	var n models.UserNotification
	err := r.db.First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *UserNotificationRepositoryImpl) FindByUser(userID string, criteria NotificationCriteria) ([]models.UserNotification, int64, error) {
	query := r.db.Where("user_id = ?", userID)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Model(&models.UserNotification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit < 1 {
		limit = 20
	}

	var notifications []models.UserNotification
	err := query.Order("created_at DESC").
		Limit(limit).Offset(criteria.Offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *UserNotificationRepositoryImpl) ExistsForDay(userID, documentID, notificationType string, at time.Time) (bool, error) {
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND document_id = ? AND type = ?", userID, documentID, notificationType).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count).Error
	return count > 0, err
}

func (r *UserNotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *UserNotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.UserNotification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *UserNotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.UserNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *UserNotificationRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.UserNotification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *UserNotificationRepositoryImpl) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.UserNotification{})
	return result.RowsAffected, result.Error
}
