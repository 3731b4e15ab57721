package email

import "docvault_backend/internal/logger"

// MockProvider logs instead of sending. Used when no SMTP host is
// configured and in tests.
type MockProvider struct {
	Sent []MockMessage
}

type MockMessage struct {
	To      []string
	Subject string
	Body    string
}

func (p *MockProvider) Send(to []string, subject, htmlBody string) error {
	p.Sent = append(p.Sent, MockMessage{To: to, Subject: subject, Body: htmlBody})
	logger.Debug("mock email sent", "to", to, "subject", subject)
	return nil
}

func (p *MockProvider) Validate() error { return nil }

func (p *MockProvider) Close() error { return nil }
