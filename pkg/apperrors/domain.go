package apperrors

import (
	"net/http"
)

/*
Фабрики ошибок домена "настройки уведомлений".
Каждый вид ошибки из бизнес-процесса активации каналов
получает свой код и HTTP-статус; шлюзовой слой отдает их как есть.
*/

// NewAuthorizationError - роль вызывающего не допускает операцию над каналом (403).
func NewAuthorizationError(message string) *AppError {
	return New(CodeForbidden, "role_verification", message, http.StatusForbidden)
}

// NewVerificationError - код и/или адрес не совпали с выданным challenge (400).
func NewVerificationError(message string) *AppError {
	return New(CodeVerificationFailed, "channel_verification", message, http.StatusBadRequest)
}

// NewDeliveryError - провайдер не смог доставить код подтверждения (502).
// Сам challenge при этом уже сохранен и остается рабочим до истечения TTL.
func NewDeliveryError(err error, channel string) *AppError {
	return Wrap(err, CodeDeliveryFailed, "notification",
		"Failed to deliver verification code over "+channel, http.StatusBadGateway)
}

// NewPersistenceError - ошибка записи/чтения хранилища (500).
func NewPersistenceError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "repository", "Persistence operation failed",
		http.StatusInternalServerError)
}

// NewInvalidTokenError - токен доступа не разобран или не валиден (401).
func NewInvalidTokenError(err error) *AppError {
	return Wrap(err, CodeInvalidToken, "auth", "Invalid access token", http.StatusUnauthorized)
}

// NewEmailEmptyError / NewEmailNotValidError - валидация адреса перед выдачей кода.
func NewEmailEmptyError() *AppError {
	return New(CodeEmailAddressEmpty, "validation", "Email address is empty", http.StatusBadRequest)
}

func NewEmailNotValidError() *AppError {
	return New(CodeEmailAddressNotValid, "validation", "Email address is not valid", http.StatusBadRequest)
}

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}
