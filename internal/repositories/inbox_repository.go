package repositories

import (
	"gorm.io/gorm"

	"settings_backend/internal/models"
)

type InboxRepository interface {
	Create(message *models.InboxMessage) error
	FindByRecipient(recipientID string, limit, offset int) ([]models.InboxMessage, int64, error)
}

type InboxRepositoryImpl struct {
	db *gorm.DB
}

func NewInboxRepository(db *gorm.DB) InboxRepository {
	return &InboxRepositoryImpl{db: db}
}

func (r *InboxRepositoryImpl) Create(message *models.InboxMessage) error {
	return r.db.Create(message).Error
}

func (r *InboxRepositoryImpl) FindByRecipient(recipientID string, limit, offset int) ([]models.InboxMessage, int64, error) {
	var messages []models.InboxMessage
	var total int64

	query := r.db.Model(&models.InboxMessage{}).Where("recipient_id = ?", recipientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
