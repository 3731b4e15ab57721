package algorithms

import (
	"fmt"
	"time"
)

// Terminal types produced by the urgent same-day check for documents
// discovered already overdue. They are never scheduled ahead of time.
const (
	TypeExpirationToday = "expiration_today"
	TypeDueDateToday    = "due_date_today"
	TypeDocumentExpired = "document_expired"
	TypePastDue         = "past_due"
)

type ContentInput struct {
	DocumentName string
	Category     string
	Subtype      string
	Date         time.Time
}

type Content struct {
	Title   string
	Message string
}

// GenerateNotificationContent maps a notification type to user-facing
// copy. Pure function, total over its input: unknown types fall back to
// a generic notification instead of failing.
func GenerateNotificationContent(notificationType string, in ContentInput) Content {
	docType := in.Subtype
	if docType == "" {
		docType = in.Category
	}
	if docType == "" {
		docType = "Document"
	}

	name := in.DocumentName
	date := in.Date.Format("Jan 2, 2006")

	switch notificationType {
	case "expiration_90d":
		return Content{
			Title:   fmt.Sprintf("Upcoming expiration: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s, 90 days from now. No action needed yet.", docType, name, date),
		}
	case "expiration_60d":
		return Content{
			Title:   fmt.Sprintf("Expiration in 60 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s. A good time to start planning the renewal.", docType, name, date),
		}
	case "expiration_30d":
		return Content{
			Title:   fmt.Sprintf("Expires in 30 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s. Begin the renewal process to avoid a lapse.", docType, name, date),
		}
	case "expiration_15d":
		return Content{
			Title:   fmt.Sprintf("Expires in 15 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s. Renew it soon.", docType, name, date),
		}
	case "expiration_7d":
		return Content{
			Title:   fmt.Sprintf("Expires in 7 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s. Take action now!", docType, name, date),
		}
	case "expiration_2d":
		return Content{
			Title:   fmt.Sprintf("URGENT: %s expires in 2 days", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires on %s. Immediate action required.", docType, name, date),
		}
	case "expiration_1d":
		return Content{
			Title:   fmt.Sprintf("URGENT: %s expires tomorrow", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires tomorrow, %s. Immediate action required.", docType, name, date),
		}
	case TypeExpirationToday:
		return Content{
			Title:   fmt.Sprintf("CRITICAL: %s expires today", name),
			Message: fmt.Sprintf("Your %s \"%s\" expires today, %s. Act before end of day.", docType, name, date),
		}
	case TypeDocumentExpired:
		return Content{
			Title:   fmt.Sprintf("%s has expired", name),
			Message: fmt.Sprintf("Your %s \"%s\" expired on %s. Renew it to stay compliant.", docType, name, date),
		}
	case "due_date_7d":
		return Content{
			Title:   fmt.Sprintf("Due in 7 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" is due on %s.", docType, name, date),
		}
	case "due_date_3d":
		return Content{
			Title:   fmt.Sprintf("Due in 3 days: %s", name),
			Message: fmt.Sprintf("Your %s \"%s\" is due on %s. Make sure it is ready.", docType, name, date),
		}
	case "due_date_1d":
		return Content{
			Title:   fmt.Sprintf("URGENT: %s is due tomorrow", name),
			Message: fmt.Sprintf("Your %s \"%s\" is due tomorrow, %s. Take action now!", docType, name, date),
		}
	case TypeDueDateToday:
		return Content{
			Title:   fmt.Sprintf("CRITICAL: %s is due today", name),
			Message: fmt.Sprintf("Your %s \"%s\" is due today, %s. Act before end of day.", docType, name, date),
		}
	case TypePastDue:
		return Content{
			Title:   fmt.Sprintf("%s is past due", name),
			Message: fmt.Sprintf("Your %s \"%s\" was due on %s and is now past due.", docType, name, date),
		}
	default:
		return Content{
			Title:   fmt.Sprintf("Notification: %s", name),
			Message: fmt.Sprintf("You have a notification about your %s \"%s\".", docType, name),
		}
	}
}
