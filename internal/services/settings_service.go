package services

import (
	"context"
	"encoding/json"

	"settings_backend/internal/auth"
	"settings_backend/internal/models"
	"settings_backend/internal/repositories"
	"settings_backend/internal/services/dto"
	"settings_backend/pkg/apperrors"
)

// SettingsService - чтение настроек каналов пользователя.
type SettingsService interface {
	// FindSettings возвращает настройки владельца токена,
	// создавая запись настроек при первом обращении.
	FindSettings(ctx context.Context, accessToken string) (*dto.SettingsResponse, error)
	// FindSettingsByUserID - административное чтение настроек другого
	// пользователя по его идентификатору.
	FindSettingsByUserID(ctx context.Context, userID string) (*dto.SettingsResponse, error)
	// FindInboxMessages возвращает страницу сообщений inbox-канала
	// владельца токена, новые сверху.
	FindInboxMessages(ctx context.Context, accessToken string, limit, offset int) (*dto.InboxMessagesResponse, error)
}

type settingsService struct {
	parser       auth.TokenParser
	settingsRepo repositories.SettingsRepository
	channelRepo  repositories.ChannelRepository
	inboxRepo    repositories.InboxRepository
}

func NewSettingsService(
	parser auth.TokenParser,
	settingsRepo repositories.SettingsRepository,
	channelRepo repositories.ChannelRepository,
	inboxRepo repositories.InboxRepository,
) SettingsService {
	return &settingsService{
		parser:       parser,
		settingsRepo: settingsRepo,
		channelRepo:  channelRepo,
		inboxRepo:    inboxRepo,
	}
}

func (s *settingsService) FindSettings(ctx context.Context, accessToken string) (*dto.SettingsResponse, error) {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return nil, apperrors.NewInvalidTokenError(err)
	}

	settings, err := s.settingsRepo.GetOrCreateByKeycloakID(claims.UserID())
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	return s.buildResponse(settings)
}

func (s *settingsService) FindSettingsByUserID(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.FindByKeycloakID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSettingsNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	return s.buildResponse(settings)
}

func (s *settingsService) FindInboxMessages(ctx context.Context, accessToken string, limit, offset int) (*dto.InboxMessagesResponse, error) {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return nil, apperrors.NewInvalidTokenError(err)
	}

	// Сообщения inbox адресуются по username получателя
	messages, total, err := s.inboxRepo.FindByRecipient(claims.Username, limit, offset)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	out := make([]dto.InboxMessageInfo, 0, len(messages))
	for _, message := range messages {
		info := dto.InboxMessageInfo{
			ID:        message.ID,
			Subject:   message.Subject,
			Template:  message.Template,
			IsRead:    message.IsRead,
			CreatedAt: message.CreatedAt,
		}
		if len(message.Parameters) > 0 {
			params := make(map[string]string)
			if err := json.Unmarshal(message.Parameters, &params); err == nil {
				info.Params = params
			}
		}
		out = append(out, info)
	}

	return &dto.InboxMessagesResponse{Messages: out, Total: total}, nil
}

func (s *settingsService) buildResponse(settings *models.Settings) (*dto.SettingsResponse, error) {
	records, err := s.channelRepo.FindBySettingsID(settings.ID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	channels := make([]dto.ChannelInfo, 0, len(records))
	for _, record := range records {
		channels = append(channels, dto.ChannelInfo{
			Channel:            record.Channel.String(),
			Activated:          record.IsActivated,
			Address:            record.Address,
			DeactivationReason: record.DeactivationReason,
		})
	}

	return &dto.SettingsResponse{
		SettingsID: settings.ID,
		Channels:   channels,
	}, nil
}
