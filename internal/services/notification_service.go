package services

import (
	"encoding/json"

	"docvault_backend/internal/models"
	"docvault_backend/internal/repositories"
	"docvault_backend/internal/services/dto"
	"docvault_backend/pkg/apperrors"
)

// NotificationService covers the read side of the bell: listing,
// counting and read-state transitions.
type NotificationService interface {
	GetNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error
}

type notificationService struct {
	notifRepo repositories.UserNotificationRepository
}

func NewNotificationService(notifRepo repositories.UserNotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) GetNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notifRepo.FindByUser(userID, criteria)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	unread, err := s.notifRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
	}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.notifRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	notification, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if notification.UserID != userID {
		return apperrors.ForbiddenError("Access denied")
	}
	if err := s.notifRepo.MarkAsRead(notificationID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notifRepo.MarkAllAsRead(userID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	notification, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if notification.UserID != userID {
		return apperrors.ForbiddenError("Access denied")
	}
	if err := s.notifRepo.Delete(notificationID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func buildNotificationResponse(n *models.UserNotification) *dto.NotificationResponse {
	response := &dto.NotificationResponse{
		ID:         n.ID,
		UserID:     n.UserID,
		DocumentID: n.DocumentID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}

	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			response.Data = data
		}
	}

	return response
}
