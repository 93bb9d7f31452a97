package services

import (
	"context"
	"time"

	"settings_backend/internal/audit"
	"settings_backend/internal/auth"
	"settings_backend/internal/logger"
	"settings_backend/internal/models"
	"settings_backend/internal/repositories"
	"settings_backend/internal/services/dto"
	"settings_backend/pkg/apperrors"
)

const (
	reasonRoleVerificationFailed    = "User role verification failed"
	reasonChannelVerificationFailed = "Communication channel verification failed"
)

// ActivationService - переходы состояния записи канала:
// NO_RECORD -> INACTIVE/ACTIVE, далее ACTIVE <-> INACTIVE. Удаления нет.
// Активация требует подтвержденного кода, деактивация - только роли.
type ActivationService interface {
	ActivateChannel(ctx context.Context, channel models.Channel, input *dto.ActivateChannelInput, accessToken string) error
	DeactivateChannel(ctx context.Context, channel models.Channel, input *dto.DeactivateChannelInput, accessToken string) error
}

type activationService struct {
	parser       auth.TokenParser
	roleGate     *auth.RoleGate
	verification VerificationService
	settingsRepo repositories.SettingsRepository
	channelRepo  repositories.ChannelRepository
	auditFacade  *audit.Facade
}

func NewActivationService(
	parser auth.TokenParser,
	roleGate *auth.RoleGate,
	verification VerificationService,
	settingsRepo repositories.SettingsRepository,
	channelRepo repositories.ChannelRepository,
	auditFacade *audit.Facade,
) ActivationService {
	return &activationService{
		parser:       parser,
		roleGate:     roleGate,
		verification: verification,
		settingsRepo: settingsRepo,
		channelRepo:  channelRepo,
		auditFacade:  auditFacade,
	}
}

func (s *activationService) ActivateChannel(ctx context.Context, channel models.Channel, input *dto.ActivateChannelInput, accessToken string) error {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return apperrors.NewInvalidTokenError(err)
	}
	userID := claims.UserID()

	if !s.roleGate.Verify(channel, claims.Roles()) {
		s.auditFacade.ActivationFailure(ctx, userID, channel, input.Address, reasonRoleVerificationFailed)
		return apperrors.NewAuthorizationError(reasonRoleVerificationFailed)
	}

	verified, err := s.verification.Verify(ctx, channel, accessToken, input.VerificationCode, input.Address)
	if err != nil {
		return err
	}
	if !verified {
		s.auditFacade.ActivationFailure(ctx, userID, channel, input.Address, reasonChannelVerificationFailed)
		return apperrors.NewVerificationError(reasonChannelVerificationFailed)
	}

	settings, err := s.settingsRepo.GetOrCreateByKeycloakID(userID)
	if err != nil {
		s.auditFacade.ActivationFailure(ctx, userID, channel, input.Address, err.Error())
		return apperrors.NewPersistenceError(err)
	}

	record, err := s.channelRepo.FindBySettingsAndChannel(settings.ID, channel)
	switch {
	case err == nil:
		logger.CtxInfo(ctx, "Activation of existing channel", "channel", channel)
		err = s.channelRepo.Activate(record.ID, input.Address, time.Now())
	case apperrors.Is(err, repositories.ErrChannelNotFound):
		logger.CtxInfo(ctx, "Creation of activated channel", "channel", channel)
		err = s.channelRepo.Create(settings.ID, channel, &input.Address, true, nil)
	}
	if err != nil {
		s.auditFacade.ActivationFailure(ctx, userID, channel, input.Address, err.Error())
		return apperrors.NewPersistenceError(err)
	}

	s.auditFacade.ActivationSuccess(ctx, userID, channel, input.Address)
	return nil
}

func (s *activationService) DeactivateChannel(ctx context.Context, channel models.Channel, input *dto.DeactivateChannelInput, accessToken string) error {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return apperrors.NewInvalidTokenError(err)
	}
	userID := claims.UserID()

	submitted := ""
	if input.Address != nil {
		submitted = *input.Address
	}

	if !s.roleGate.Verify(channel, claims.Roles()) {
		s.auditFacade.DeactivationFailure(ctx, userID, channel, submitted, input.DeactivationReason, reasonRoleVerificationFailed)
		return apperrors.NewAuthorizationError(reasonRoleVerificationFailed)
	}

	settings, err := s.settingsRepo.GetOrCreateByKeycloakID(userID)
	if err != nil {
		s.auditFacade.DeactivationFailure(ctx, userID, channel, submitted, input.DeactivationReason, err.Error())
		return apperrors.NewPersistenceError(err)
	}

	// Адрес в записи: переданный имеет приоритет, иначе остается прежний.
	resultingAddress := submitted

	record, err := s.channelRepo.FindBySettingsAndChannel(settings.ID, channel)
	switch {
	case err == nil:
		if input.Address == nil && record.Address != nil {
			resultingAddress = *record.Address
		}
		logger.CtxInfo(ctx, "Deactivation of existing channel", "channel", channel)
		err = s.channelRepo.Deactivate(record.ID, input.Address, input.DeactivationReason, time.Now())
	case apperrors.Is(err, repositories.ErrChannelNotFound):
		logger.CtxInfo(ctx, "Creation of deactivated channel", "channel", channel)
		err = s.channelRepo.Create(settings.ID, channel, input.Address, false, &input.DeactivationReason)
	}
	if err != nil {
		s.auditFacade.DeactivationFailure(ctx, userID, channel, resultingAddress, input.DeactivationReason, err.Error())
		return apperrors.NewPersistenceError(err)
	}

	s.auditFacade.DeactivationSuccess(ctx, userID, channel, resultingAddress, input.DeactivationReason)
	return nil
}
