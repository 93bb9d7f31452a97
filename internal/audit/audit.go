package audit

import (
	"context"

	"settings_backend/internal/models"
)

// Операции аудита каналов уведомлений.
const (
	OperationChannelActivation   = "USER_NOTIFICATION_CHANNEL_ACTIVATION"
	OperationChannelDeactivation = "USER_NOTIFICATION_CHANNEL_DEACTIVATION"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Fact - единичный факт аудита. Address и причины опциональны:
// что известно на момент отказа, то и фиксируется.
type Fact struct {
	Operation          string
	Status             string
	UserID             string
	Channel            models.Channel
	Address            string
	DeactivationReason string
	FailureReason      string
}

// Sink принимает факты аудита. Реализация может писать в БД,
// лог или внешнюю шину; ошибка отдачи факта решается на уровне Facade.
type Sink interface {
	Send(ctx context.Context, fact Fact) error
}
