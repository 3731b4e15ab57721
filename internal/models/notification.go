package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserNotification is the in-app ("bell") notification record. At most
// one row per (user, document, type) per calendar day is created; that
// check lives in the repository, backed by the composite index below.
type UserNotification struct {
	BaseModel
	UserID     string         `gorm:"not null;index:idx_user_notifications_dedup,priority:1" json:"user_id"`
	DocumentID string         `gorm:"index:idx_user_notifications_dedup,priority:2" json:"document_id"`
	Type       string         `gorm:"not null;index:idx_user_notifications_dedup,priority:3" json:"type"`
	Title      string         `gorm:"not null" json:"title"`
	Message    string         `json:"message"`
	Data       datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"document_id": "...", "target_date": "..."}
	IsRead     bool           `gorm:"default:false" json:"is_read"`
	ReadAt     *time.Time     `json:"read_at"`
}
