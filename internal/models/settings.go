package models

// Settings - корневая запись настроек пользователя.
// Создается при первом обращении и связывает внешний идентификатор
// пользователя (Keycloak ID из токена) с настройками каналов.
type Settings struct {
	BaseModel
	KeycloakID string `gorm:"type:uuid;not null;uniqueIndex"`
}

// NotificationChannel - запись активации канала: не более одной
// на пару (settings_id, channel). Активация ставит is_activated=true
// и очищает причину деактивации; деактивация сохраняет последний адрес.
type NotificationChannel struct {
	BaseModel
	SettingsID         string  `gorm:"type:uuid;not null;uniqueIndex:idx_settings_channel"`
	Channel            Channel `gorm:"type:varchar(32);not null;uniqueIndex:idx_settings_channel"`
	Address            *string
	DeactivationReason *string
	IsActivated        bool `gorm:"not null;default:false"`
}
