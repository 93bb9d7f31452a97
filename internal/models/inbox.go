package models

import (
	"gorm.io/datatypes"
)

// InboxMessage - сообщение внутреннего inbox-канала.
// Для канала inbox код подтверждения не уходит во внешнюю систему,
// а сохраняется как сообщение в кабинете пользователя.
type InboxMessage struct {
	BaseModel
	RecipientID string `gorm:"not null;index"`
	Subject     string `gorm:"not null"`
	Template    string
	Parameters  datatypes.JSON `gorm:"type:jsonb"` // {"verificationCode": "..."}
	IsRead      bool           `gorm:"default:false"`
}
