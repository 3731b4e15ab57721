package dto

import "time"

// Soft results: scheduling is a side effect of a document save and is
// never allowed to fail the save, so these carry a success flag
// instead of propagating an error.

type ScheduleResult struct {
	Success        bool   `json:"success"`
	ScheduledCount int    `json:"scheduled_count,omitempty"`
	Error          string `json:"error,omitempty"`
}

type CancelResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ToggleResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ProcessResult struct {
	Processed  int `json:"processed"`
	Created    int `json:"created"`
	EmailsSent int `json:"emails_sent"`
	Errors     int `json:"errors"`
}

type UrgentResult struct {
	Created int `json:"created"`
}

type UpcomingCriteria struct {
	Days           int    `form:"days" binding:"min=0,max=365"`
	Limit          int    `form:"limit" binding:"min=0,max=100"`
	IncludeExpired bool   `form:"include_expired"`
	OrganizationID string `form:"organization_id"`
}

type ExpiringDocument struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DocumentCategory string    `json:"document_category"`
	DocumentSubtype  string    `json:"document_subtype"`
	ExpirationDate   time.Time `json:"expiration_date"`
	DaysUntil        int       `json:"days_until"`
	Status           string    `json:"status"`
}
