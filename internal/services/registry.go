package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	SettingsService     SettingsService
	VerificationService VerificationService
	ActivationService   ActivationService
}
