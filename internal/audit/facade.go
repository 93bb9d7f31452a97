package audit

import (
	"context"

	"settings_backend/internal/logger"
	"settings_backend/internal/models"
)

// Facade - точки вызова аудита из workflow активации/деактивации.
// Отдача факта best-effort: сбой аудита логируется и никогда
// не подменяет исходную ошибку операции.
type Facade struct {
	sink Sink
}

func NewFacade(sink Sink) *Facade {
	return &Facade{sink: sink}
}

func (f *Facade) ActivationSuccess(ctx context.Context, userID string, channel models.Channel, address string) {
	f.send(ctx, Fact{
		Operation: OperationChannelActivation,
		Status:    StatusSuccess,
		UserID:    userID,
		Channel:   channel,
		Address:   address,
	})
}

func (f *Facade) ActivationFailure(ctx context.Context, userID string, channel models.Channel, address, failureReason string) {
	f.send(ctx, Fact{
		Operation:     OperationChannelActivation,
		Status:        StatusFailure,
		UserID:        userID,
		Channel:       channel,
		Address:       address,
		FailureReason: failureReason,
	})
}

func (f *Facade) DeactivationSuccess(ctx context.Context, userID string, channel models.Channel, address, deactivationReason string) {
	f.send(ctx, Fact{
		Operation:          OperationChannelDeactivation,
		Status:             StatusSuccess,
		UserID:             userID,
		Channel:            channel,
		Address:            address,
		DeactivationReason: deactivationReason,
	})
}

func (f *Facade) DeactivationFailure(ctx context.Context, userID string, channel models.Channel, address, deactivationReason, failureReason string) {
	f.send(ctx, Fact{
		Operation:          OperationChannelDeactivation,
		Status:             StatusFailure,
		UserID:             userID,
		Channel:            channel,
		Address:            address,
		DeactivationReason: deactivationReason,
		FailureReason:      failureReason,
	})
}

func (f *Facade) send(ctx context.Context, fact Fact) {
	if err := f.sink.Send(ctx, fact); err != nil {
		logger.CtxWithError(ctx, "Failed to emit audit fact", err,
			"operation", fact.Operation,
			"status", fact.Status,
			"channel", fact.Channel,
		)
	}
}
