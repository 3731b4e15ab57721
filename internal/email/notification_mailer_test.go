package email

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotificationEmail(t *testing.T) {
	provider := &MockProvider{}
	mailer := NewNotificationMailer(provider, time.Second)

	err := mailer.SendNotificationEmail(NotificationEmail{
		UserEmail:        "user@example.com",
		UserName:         "Dana",
		DocumentName:     "Liability Policy",
		NotificationType: "expiration_7d",
		Title:            "Expires in 7 days: Liability Policy",
		Message:          "Your insurance expires soon.",
		Date:             time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, provider.Sent, 1)
	sent := provider.Sent[0]
	assert.Equal(t, []string{"user@example.com"}, sent.To)
	assert.Equal(t, "Expires in 7 days: Liability Policy", sent.Subject)
	assert.Contains(t, sent.Body, "Hello Dana")
	assert.Contains(t, sent.Body, "Liability Policy")
	assert.Contains(t, sent.Body, "Jun 15, 2026")
}

type slowProvider struct{ delay time.Duration }

func (p *slowProvider) Send(to []string, subject, htmlBody string) error {
	time.Sleep(p.delay)
	return nil
}
func (p *slowProvider) Validate() error { return nil }
func (p *slowProvider) Close() error    { return nil }

func TestSendNotificationEmail_Timeout(t *testing.T) {
	mailer := NewNotificationMailer(&slowProvider{delay: 500 * time.Millisecond}, 50*time.Millisecond)

	err := mailer.SendNotificationEmail(NotificationEmail{
		UserEmail: "user@example.com",
		Title:     "subject",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

type failingProvider struct{}

func (p *failingProvider) Send(to []string, subject, htmlBody string) error {
	return errors.New("connection refused")
}
func (p *failingProvider) Validate() error { return nil }
func (p *failingProvider) Close() error    { return nil }

func TestSendNotificationEmail_ProviderError(t *testing.T) {
	mailer := NewNotificationMailer(&failingProvider{}, time.Second)

	err := mailer.SendNotificationEmail(NotificationEmail{UserEmail: "user@example.com"})
	assert.EqualError(t, err, "connection refused")
}

func TestSendNotificationEmail_AnonymousGreeting(t *testing.T) {
	provider := &MockProvider{}
	mailer := NewNotificationMailer(provider, time.Second)

	require.NoError(t, mailer.SendNotificationEmail(NotificationEmail{
		UserEmail: "user@example.com",
		Title:     "subject",
	}))

	require.Len(t, provider.Sent, 1)
	assert.Contains(t, provider.Sent[0].Body, "Hello,")
}
