package services

// ServiceContainer bundles the constructed services for wiring.
type ServiceContainer struct {
	AuthService         AuthService
	DocumentService     DocumentService
	ExpirationService   ExpirationService
	NotificationService NotificationService
}
