package dto

import "time"

type CreateDocumentRequest struct {
	Name                      string `json:"name" validate:"required,max=255"`
	DocumentCategory          string `json:"document_category" validate:"max=100"`
	DocumentSubtype           string `json:"document_subtype" validate:"max=100"`
	OrganizationID            string `json:"organization_id"`
	ExpirationDate            string `json:"expiration_date"`
	ExpirationTrackingEnabled bool   `json:"expiration_tracking_enabled"`
	DueDate                   string `json:"due_date"`
	DueDateTrackingEnabled    bool   `json:"due_date_tracking_enabled"`
}

type UpdateDocumentRequest struct {
	Name                      *string `json:"name" validate:"omitempty,max=255"`
	DocumentCategory          *string `json:"document_category" validate:"omitempty,max=100"`
	DocumentSubtype           *string `json:"document_subtype" validate:"omitempty,max=100"`
	ExpirationDate            *string `json:"expiration_date"`
	ExpirationTrackingEnabled *bool   `json:"expiration_tracking_enabled"`
	DueDate                   *string `json:"due_date"`
	DueDateTrackingEnabled    *bool   `json:"due_date_tracking_enabled"`
}

type DocumentResponse struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	DocumentCategory          string     `json:"document_category"`
	DocumentSubtype           string     `json:"document_subtype"`
	OrganizationID            string     `json:"organization_id,omitempty"`
	UploadedByID              string     `json:"uploaded_by_id"`
	ExpirationDate            *time.Time `json:"expiration_date"`
	ExpirationTrackingEnabled bool       `json:"expiration_tracking_enabled"`
	DueDate                   *time.Time `json:"due_date"`
	DueDateTrackingEnabled    bool       `json:"due_date_tracking_enabled"`
	CreatedAt                 time.Time  `json:"created_at"`
}

type DocumentListResponse struct {
	Documents []*DocumentResponse `json:"documents"`
	Total     int64               `json:"total"`
}
