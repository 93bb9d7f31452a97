package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"settings_backend/internal/logger"
	"settings_backend/internal/models"
)

// DBSink пишет факты аудита в таблицу audit_events.
type DBSink struct {
	db *gorm.DB
}

func NewDBSink(db *gorm.DB) *DBSink {
	return &DBSink{db: db}
}

func (s *DBSink) Send(ctx context.Context, fact Fact) error {
	payload := map[string]string{
		"channel": fact.Channel.String(),
	}
	if fact.Address != "" {
		payload["address"] = fact.Address
	}
	if fact.DeactivationReason != "" {
		payload["deactivationReason"] = fact.DeactivationReason
	}
	if fact.FailureReason != "" {
		payload["failureReason"] = fact.FailureReason
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit context: %w", err)
	}

	event := models.AuditEvent{
		Operation: fact.Operation,
		Status:    fact.Status,
		UserID:    fact.UserID,
		RequestID: logger.GetRequestID(ctx),
		Context:   datatypes.JSON(data),
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}
	return nil
}
