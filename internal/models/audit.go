package models

import (
	"gorm.io/datatypes"
)

// AuditEvent - факт аудита операции над каналом уведомлений.
// Пишется и при успехе, и при отказе, до проброса ошибки наверх.
type AuditEvent struct {
	BaseModel
	Operation string `gorm:"not null;index"`
	Status    string `gorm:"not null"`
	UserID    string `gorm:"index"`
	RequestID string
	Context   datatypes.JSON `gorm:"type:jsonb"` // channel, address, failureReason...
}
