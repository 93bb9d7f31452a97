package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"settings_backend/internal/models"
)

var ErrChannelNotFound = errors.New("notification channel not found")

// ChannelRepository - персистентность записей активации каналов.
// На пару (settings_id, channel) существует не более одной записи;
// уникальный индекс в модели страхует это на уровне БД.
type ChannelRepository interface {
	FindBySettingsID(settingsID string) ([]models.NotificationChannel, error)
	FindBySettingsAndChannel(settingsID string, channel models.Channel) (*models.NotificationChannel, error)
	Create(settingsID string, channel models.Channel, address *string, activated bool, deactivationReason *string) error
	// Activate ставит is_activated=true, пишет адрес и сбрасывает причину деактивации.
	Activate(id string, address string, updatedAt time.Time) error
	// Deactivate ставит is_activated=false и причину; адрес обновляется
	// только когда передан непустой.
	Deactivate(id string, address *string, deactivationReason string, updatedAt time.Time) error
}

type ChannelRepositoryImpl struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &ChannelRepositoryImpl{db: db}
}

func (r *ChannelRepositoryImpl) FindBySettingsID(settingsID string) ([]models.NotificationChannel, error) {
	var channels []models.NotificationChannel
	err := r.db.
		Where("settings_id = ?", settingsID).
		Order("channel").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *ChannelRepositoryImpl) FindBySettingsAndChannel(settingsID string, channel models.Channel) (*models.NotificationChannel, error) {
	var record models.NotificationChannel
	err := r.db.
		Where("settings_id = ? AND channel = ?", settingsID, channel).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChannelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ChannelRepositoryImpl) Create(settingsID string, channel models.Channel, address *string, activated bool, deactivationReason *string) error {
	record := models.NotificationChannel{
		SettingsID:         settingsID,
		Channel:            channel,
		Address:            address,
		IsActivated:        activated,
		DeactivationReason: deactivationReason,
	}
	return r.db.Create(&record).Error
}

func (r *ChannelRepositoryImpl) Activate(id string, address string, updatedAt time.Time) error {
	return r.db.Model(&models.NotificationChannel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"address":             address,
			"is_activated":        true,
			"deactivation_reason": nil,
			"updated_at":          updatedAt,
		}).Error
}

func (r *ChannelRepositoryImpl) Deactivate(id string, address *string, deactivationReason string, updatedAt time.Time) error {
	updates := map[string]interface{}{
		"is_activated":        false,
		"deactivation_reason": deactivationReason,
		"updated_at":          updatedAt,
	}
	if address != nil {
		updates["address"] = *address
	}
	return r.db.Model(&models.NotificationChannel{}).
		Where("id = ?", id).
		Updates(updates).Error
}
