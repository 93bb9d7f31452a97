package dto

import "time"

// VerificationInput - запрос на отправку кода подтверждения.
type VerificationInput struct {
	Address string `json:"address" validate:"required"`
}

// VerificationCodeExpiration - срок жизни выданного кода, секунды.
type VerificationCodeExpiration struct {
	ExpirationSeconds int `json:"verificationCodeExpirationSec"`
}

// ActivateChannelInput - запрос активации канала.
type ActivateChannelInput struct {
	Address          string `json:"address" validate:"required"`
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

// DeactivateChannelInput - запрос деактивации канала.
// Address опционален: без него запись сохраняет прежний адрес.
type DeactivateChannelInput struct {
	Address            *string `json:"address,omitempty"`
	DeactivationReason string  `json:"deactivationReason" validate:"required"`
}

// ChannelInfo - состояние одного канала в ответе настроек.
type ChannelInfo struct {
	Channel            string  `json:"channel"`
	Activated          bool    `json:"activated"`
	Address            *string `json:"address,omitempty"`
	DeactivationReason *string `json:"deactivationReason,omitempty"`
}

// SettingsResponse - настройки пользователя со списком каналов.
type SettingsResponse struct {
	SettingsID string        `json:"settingsId"`
	Channels   []ChannelInfo `json:"channels"`
}

// InboxMessageInfo - сообщение inbox-канала в ответе API.
type InboxMessageInfo struct {
	ID        string            `json:"id"`
	Subject   string            `json:"subject"`
	Template  string            `json:"template,omitempty"`
	Params    map[string]string `json:"parameters,omitempty"`
	IsRead    bool              `json:"isRead"`
	CreatedAt time.Time         `json:"createdAt"`
}

// InboxMessagesResponse - страница сообщений inbox-канала.
type InboxMessagesResponse struct {
	Messages []InboxMessageInfo `json:"messages"`
	Total    int64              `json:"total"`
}
