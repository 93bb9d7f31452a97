package services

import (
	"context"
	"time"

	"settings_backend/internal/auth"
	"settings_backend/internal/logger"
	"settings_backend/internal/models"
	"settings_backend/internal/notification"
	"settings_backend/internal/otp"
	"settings_backend/internal/services/dto"
	"settings_backend/pkg/apperrors"
)

// VerificationService выдает коды подтверждения владения каналом
// и сверяет их при активации.
type VerificationService interface {
	SendVerificationCode(ctx context.Context, channel models.Channel, input *dto.VerificationInput, accessToken string) (*dto.VerificationCodeExpiration, error)
	// Verify сверяет код и адрес с ожидающим challenge.
	// false без ошибки - обычный исход несовпадения или истекшего кода.
	Verify(ctx context.Context, channel models.Channel, accessToken, verificationCode, address string) (bool, error)
}

type verificationService struct {
	parser    auth.TokenParser
	roleGate  *auth.RoleGate
	generator otp.Generator
	store     otp.Store
	sender    notification.Sender
	ttl       time.Duration
}

func NewVerificationService(
	parser auth.TokenParser,
	roleGate *auth.RoleGate,
	generator otp.Generator,
	store otp.Store,
	sender notification.Sender,
	ttl time.Duration,
) VerificationService {
	return &verificationService{
		parser:    parser,
		roleGate:  roleGate,
		generator: generator,
		store:     store,
		sender:    sender,
		ttl:       ttl,
	}
}

func (s *verificationService) SendVerificationCode(ctx context.Context, channel models.Channel, input *dto.VerificationInput, accessToken string) (*dto.VerificationCodeExpiration, error) {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return nil, apperrors.NewInvalidTokenError(err)
	}

	if !s.roleGate.Verify(channel, claims.Roles()) {
		return nil, apperrors.NewAuthorizationError("Invalid user role for verify operation")
	}

	if channel == models.ChannelEmail {
		if err := ValidateEmailAddress(input.Address); err != nil {
			return nil, err
		}
	}

	code := s.generator.Generate()
	key := otp.Key(claims.UserID(), channel)

	// Save перезаписывает прежний challenge этого пользователя и канала:
	// повторный запрос кода аннулирует предыдущий.
	challenge := otp.Challenge{Address: input.Address, Code: code}
	if err := s.store.Save(ctx, key, challenge); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	realm := s.roleGate.ResolveRealm(claims.Roles())

	// Challenge уже сохранен: при сбое доставки код остается рабочим,
	// повторная выдача - новый вызов SendVerificationCode.
	err = s.sender.Send(ctx, notification.Message{
		Channel:     channel,
		Address:     input.Address,
		RecipientID: claims.Username,
		Realm:       realm,
		Template:    notification.TemplateChannelConfirmation,
		Parameters:  map[string]string{"verificationCode": code},
	})
	if err != nil {
		return nil, apperrors.NewDeliveryError(err, channel.String())
	}

	logger.CtxInfo(ctx, "Verification code issued", "channel", channel)
	return &dto.VerificationCodeExpiration{ExpirationSeconds: int(s.ttl.Seconds())}, nil
}

func (s *verificationService) Verify(ctx context.Context, channel models.Channel, accessToken, verificationCode, address string) (bool, error) {
	claims, err := s.parser.Parse(accessToken)
	if err != nil {
		return false, apperrors.NewInvalidTokenError(err)
	}

	key := otp.Key(claims.UserID(), channel)
	challenge, err := s.store.Find(ctx, key)
	if err != nil {
		if apperrors.Is(err, otp.ErrChallengeNotFound) {
			logger.CtxWarn(ctx, "Verification code expired or never issued", "channel", channel)
			return false, nil
		}
		return false, apperrors.NewPersistenceError(err)
	}

	if challenge.Code != verificationCode {
		logger.CtxWarn(ctx, "Invalid verification code submitted", "channel", channel)
	}
	if challenge.Address != address {
		logger.CtxWarn(ctx, "Submitted address does not match challenge", "channel", channel)
	}

	return challenge.Code == verificationCode &&
		challenge.Address == address &&
		s.channelSpecificVerifications(ctx, channel, claims, address), nil
}

// channelSpecificVerifications - дополнительные проверки канала.
// Для Diia адрес обязан совпадать с drfo владельца токена: чужой
// идентификатор нельзя привязать даже со знанием кода.
func (s *verificationService) channelSpecificVerifications(ctx context.Context, channel models.Channel, claims *auth.Claims, address string) bool {
	if channel == models.ChannelDiia {
		if address != claims.Drfo {
			logger.CtxWarn(ctx, "Invalid address for diia channel: submitted drfo does not match token drfo")
			return false
		}
	}
	return true
}
