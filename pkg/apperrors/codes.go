package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	// Системные и неизвестные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Общие ошибки бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Аутентификация и авторизация
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Доменные коды сервиса настроек
const (
	CodeVerificationFailed ErrorCode = "VERIFICATION_FAILED"
	CodeDeliveryFailed     ErrorCode = "DELIVERY_FAILED"

	// Коды валидации email-адреса (ключи совместимы с клиентом)
	CodeEmailAddressEmpty    ErrorCode = "ERROR_EMAIL_ADDRESS_EMPTY"
	CodeEmailAddressNotValid ErrorCode = "ERROR_EMAIL_ADDRESS_NOT_VALID"
)
