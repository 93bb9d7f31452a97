package repositories

import (
	"errors"

	"gorm.io/gorm"

	"settings_backend/internal/models"
)

var ErrSettingsNotFound = errors.New("settings not found")

type SettingsRepository interface {
	FindByKeycloakID(keycloakID string) (*models.Settings, error)
	// GetOrCreateByKeycloakID возвращает запись настроек пользователя,
	// создавая ее при первом обращении.
	GetOrCreateByKeycloakID(keycloakID string) (*models.Settings, error)
}

type SettingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) FindByKeycloakID(keycloakID string) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.Where("keycloak_id = ?", keycloakID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) GetOrCreateByKeycloakID(keycloakID string) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.
		Where(models.Settings{KeycloakID: keycloakID}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
