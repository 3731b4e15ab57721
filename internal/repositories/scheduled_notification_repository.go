package repositories

import (
	"time"

	"gorm.io/gorm"

	"docvault_backend/internal/models"
)

type ScheduledNotificationRepository interface {
	// ReplaceForDocument atomically swaps the persisted schedule for a
	// document. Existing rows whose type starts with typePrefix are
	// deleted first; an empty typePrefix clears every row. Passing an
	// empty rows slice therefore means "clear the schedule", which is a
	// valid outcome, not an error.
	ReplaceForDocument(documentID, typePrefix string, rows []*models.ScheduledNotification) error

	// DeleteByDocument removes every schedule row for the document.
	// Idempotent: deleting an empty schedule succeeds.
	DeleteByDocument(documentID string) error

	// DeleteByDocumentAndPrefix removes rows of one target kind only.
	DeleteByDocumentAndPrefix(documentID, typePrefix string) error

	// FindDueUnsent returns up to limit rows with scheduled_for <= now
	// and no sent stamp, most overdue first.
	FindDueUnsent(now time.Time, limit int) ([]models.ScheduledNotification, error)

	// MarkSent stamps a row as consumed. SentAt is monotonic: a row
	// already stamped is left untouched.
	MarkSent(id string, at time.Time) error

	FindByDocument(documentID string) ([]models.ScheduledNotification, error)
}

type ScheduledNotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewScheduledNotificationRepository(db *gorm.DB) ScheduledNotificationRepository {
	return &ScheduledNotificationRepositoryImpl{db: db}
}

func (r *ScheduledNotificationRepositoryImpl) ReplaceForDocument(documentID, typePrefix string, rows []*models.ScheduledNotification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		del := tx.Where("document_id = ?", documentID)
		if typePrefix != "" {
			del = del.Where("notification_type LIKE ?", typePrefix+"%")
		}
		if err := del.Delete(&models.ScheduledNotification{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

func (r *ScheduledNotificationRepositoryImpl) DeleteByDocument(documentID string) error {
	return r.db.Where("document_id = ?", documentID).
		Delete(&models.ScheduledNotification{}).Error
}

func (r *ScheduledNotificationRepositoryImpl) DeleteByDocumentAndPrefix(documentID, typePrefix string) error {
	return r.db.Where("document_id = ? AND notification_type LIKE ?", documentID, typePrefix+"%").
		Delete(&models.ScheduledNotification{}).Error
}

func (r *ScheduledNotificationRepositoryImpl) FindDueUnsent(now time.Time, limit int) ([]models.ScheduledNotification, error) {
	var rows []models.ScheduledNotification
	err := r.db.Where("scheduled_for <= ? AND sent_at IS NULL", now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *ScheduledNotificationRepositoryImpl) MarkSent(id string, at time.Time) error {
	return r.db.Model(&models.ScheduledNotification{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at).Error
}

func (r *ScheduledNotificationRepositoryImpl) FindByDocument(documentID string) ([]models.ScheduledNotification, error) {
	var rows []models.ScheduledNotification
	err := r.db.Where("document_id = ?", documentID).
		Order("scheduled_for ASC").
		Find(&rows).Error
	return rows, err
}
