package email

// Provider abstracts the outbound email transport.
type Provider interface {
	// Send delivers a single HTML message.
	Send(to []string, subject, htmlBody string) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases transport resources.
	Close() error
}
