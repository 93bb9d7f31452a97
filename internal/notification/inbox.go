package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"settings_backend/internal/models"
	"settings_backend/internal/repositories"
)

// InboxProvider доставляет код подтверждения в кабинет пользователя:
// внешней отправки нет, сообщение сохраняется в таблицу inbox.
type InboxProvider struct {
	repo repositories.InboxRepository
}

func NewInboxProvider(repo repositories.InboxRepository) *InboxProvider {
	return &InboxProvider{repo: repo}
}

func (p *InboxProvider) Send(ctx context.Context, msg Message) error {
	params, err := json.Marshal(msg.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal message parameters: %w", err)
	}

	message := models.InboxMessage{
		RecipientID: msg.RecipientID,
		Subject:     SubjectFor(msg.Channel),
		Template:    msg.Template,
		Parameters:  datatypes.JSON(params),
	}

	if err := p.repo.Create(&message); err != nil {
		return fmt.Errorf("failed to store inbox message: %w", err)
	}
	return nil
}
