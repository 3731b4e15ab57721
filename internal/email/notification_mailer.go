package email

import (
	"fmt"
	"time"
)

// NotificationMailer sends expiration/due-date notification emails.
type NotificationMailer interface {
	SendNotificationEmail(n NotificationEmail) error
}

type notificationMailer struct {
	provider Provider
	timeout  time.Duration
}

// NewNotificationMailer wraps a Provider with a send timeout. The
// batch processor calls this inline, so a hanging SMTP server must not
// be able to stall the whole batch.
func NewNotificationMailer(provider Provider, timeout time.Duration) NotificationMailer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &notificationMailer{provider: provider, timeout: timeout}
}

func (m *notificationMailer) SendNotificationEmail(n NotificationEmail) error {
	body := buildNotificationBody(n)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.provider.Send([]string{n.UserEmail}, n.Title, body)
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(m.timeout):
		return fmt.Errorf("notification email to %s timed out after %s", n.UserEmail, m.timeout)
	}
}

func buildNotificationBody(n NotificationEmail) string {
	greeting := "Hello"
	if n.UserName != "" {
		greeting = "Hello " + n.UserName
	}

	return fmt.Sprintf(`<html><body>
<p>%s,</p>
<p>%s</p>
<table cellpadding="4">
<tr><td><b>Document</b></td><td>%s</td></tr>
<tr><td><b>Date</b></td><td>%s</td></tr>
</table>
<p>You can manage notification preferences from your account settings.</p>
</body></html>`,
		greeting,
		n.Message,
		n.DocumentName,
		n.Date.Format("Jan 2, 2006"),
	)
}
