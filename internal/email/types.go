package email

import "time"

// NotificationEmail is the payload contract between the expiration
// engine and the email transport.
type NotificationEmail struct {
	UserEmail        string
	UserName         string
	DocumentName     string
	NotificationType string
	Title            string
	Message          string
	Date             time.Time
}
