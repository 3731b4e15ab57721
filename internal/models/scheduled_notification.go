package models

import "time"

// ScheduledNotification is a persisted future instant at which a
// notification should be generated. It is not the notification itself:
// the batch processor turns due rows into UserNotifications and stamps
// SentAt exactly once.
type ScheduledNotification struct {
	BaseModel
	DocumentID       string     `gorm:"not null;index" json:"document_id"`
	UserID           string     `gorm:"not null;index" json:"user_id"`
	NotificationType string     `gorm:"not null;index" json:"notification_type"`
	ScheduledFor     time.Time  `gorm:"not null;index" json:"scheduled_for"`
	SentAt           *time.Time `json:"sent_at"`
}
