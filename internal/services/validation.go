package services

import (
	"regexp"

	"settings_backend/pkg/apperrors"
)

// Регулярное выражение адреса: локальная часть из допустимых символов,
// домен минимум второго уровня.
var emailRegex = regexp.MustCompile(
	`^[a-zA-Z0-9_!#$%&'*+/=?` + "`" + `{|}~^-]+(?:\.[a-zA-Z0-9_!#$%&'*+/=?` + "`" + `{|}~^-]+)*@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)+$`,
)

// ValidateEmailAddress проверяет адрес перед выдачей кода подтверждения.
func ValidateEmailAddress(address string) error {
	if address == "" {
		return apperrors.NewEmailEmptyError()
	}
	if !emailRegex.MatchString(address) {
		return apperrors.NewEmailNotValidError()
	}
	return nil
}
