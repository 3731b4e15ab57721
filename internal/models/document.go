package models

import "time"

// Document holds the metadata the notification engine works against.
// The file contents themselves live in external storage and are not
// this service's concern.
type Document struct {
	BaseModel
	Name             string `gorm:"not null" json:"name"`
	DocumentCategory string `json:"document_category"`
	DocumentSubtype  string `json:"document_subtype"`
	OrganizationID   string `gorm:"index" json:"organization_id"`
	UploadedByID     string `gorm:"not null;index" json:"uploaded_by_id"`

	ExpirationDate            *time.Time `json:"expiration_date"`
	ExpirationTrackingEnabled bool       `gorm:"default:false" json:"expiration_tracking_enabled"`
	DueDate                   *time.Time `json:"due_date"`
	DueDateTrackingEnabled    bool       `gorm:"default:false" json:"due_date_tracking_enabled"`
}

// TypeLabel is the human label used in notification copy.
func (d *Document) TypeLabel() string {
	if d.DocumentSubtype != "" {
		return d.DocumentSubtype
	}
	if d.DocumentCategory != "" {
		return d.DocumentCategory
	}
	return "Document"
}
