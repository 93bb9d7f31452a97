package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settings_backend/internal/auth"
	"settings_backend/internal/models"
	"settings_backend/internal/notification"
	"settings_backend/internal/services/dto"
	"settings_backend/pkg/apperrors"
)

const testTTL = 60 * time.Second

func newTestRoleGate() *auth.RoleGate {
	return auth.NewRoleGate([]string{"officer", "unregistered-officer"}, "citizen")
}

type verificationFixture struct {
	parser  *stubParser
	store   *memStore
	sender  *recordingSender
	service VerificationService
}

func newVerificationFixture(code string, tokens map[string]*auth.Claims) *verificationFixture {
	f := &verificationFixture{
		parser: &stubParser{tokens: tokens},
		store:  newMemStore(),
		sender: &recordingSender{},
	}
	f.service = NewVerificationService(
		f.parser, newTestRoleGate(), &fixedGenerator{code: code}, f.store, f.sender, testTTL)
	return f
}

func TestSendVerificationCode_Email(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("123456", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	expiration, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")

	require.NoError(t, err)
	assert.Equal(t, 60, expiration.ExpirationSeconds)

	// Challenge сохранен под ключом "{userId}/{channel}"
	saved, ok := f.store.data["user-1/email"]
	require.True(t, ok)
	assert.Equal(t, "123456", saved.Code)
	assert.Equal(t, "john@example.com", saved.Address)

	// Код ушел получателю
	require.Len(t, f.sender.sent, 1)
	msg := f.sender.sent[0]
	assert.Equal(t, models.ChannelEmail, msg.Channel)
	assert.Equal(t, "john@example.com", msg.Address)
	assert.Equal(t, "john", msg.RecipientID)
	assert.Equal(t, auth.RealmCitizen, msg.Realm)
	assert.Equal(t, notification.TemplateChannelConfirmation, msg.Template)
	assert.Equal(t, "123456", msg.Parameters["verificationCode"])
}

func TestSendVerificationCode_InvalidToken(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("123456", map[string]*auth.Claims{})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "garbage")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.HTTPCode)
}

func TestSendVerificationCode_DiiaDeniedForOfficer(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("123456", map[string]*auth.Claims{
		"token-officer": makeClaims("user-2", "inspector", "1234567890", []string{"officer"}),
	})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelDiia,
		&dto.VerificationInput{Address: "1234567890"}, "token-officer")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.store.data)
}

func TestSendVerificationCode_NoRolesInToken(t *testing.T) {
	t.Parallel()

	// nil-роли в токене - отказ для любого канала
	f := newVerificationFixture("123456", map[string]*auth.Claims{
		"token-bare": makeClaims("user-3", "ghost", "", nil),
	})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "ghost@example.com"}, "token-bare")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestSendVerificationCode_EmailAddressValidation(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("123456", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	tests := []struct {
		name    string
		address string
		code    apperrors.ErrorCode
	}{
		{"пустой адрес", "", apperrors.CodeEmailAddressEmpty},
		{"без домена", "john@", apperrors.CodeEmailAddressNotValid},
		{"без @", "john.example.com", apperrors.CodeEmailAddressNotValid},
		{"домен первого уровня", "john@localhost", apperrors.CodeEmailAddressNotValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
				&dto.VerificationInput{Address: tt.address}, "token-1")

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestSendVerificationCode_DeliveryFailureKeepsChallenge(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("123456", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})
	f.sender.err = errors.New("smtp connection refused")

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.HTTPCode)

	// Challenge сохранен до попытки доставки и остается рабочим
	_, ok := f.store.data["user-1/email"]
	assert.True(t, ok)
}

func TestVerify_Success(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("654321", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")
	require.NoError(t, err)

	verified, err := f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "654321", "john@example.com")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_WrongCodeOrAddress(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("654321", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")
	require.NoError(t, err)

	verified, err := f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "000000", "john@example.com")
	require.NoError(t, err)
	assert.False(t, verified, "чужой код не проходит")

	verified, err = f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "654321", "other@example.com")
	require.NoError(t, err)
	assert.False(t, verified, "код с другим адресом не проходит")
}

func TestVerify_ExpiredOrMissingChallenge(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("654321", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	// Кода никто не запрашивал: обычный отказ без ошибки
	verified, err := f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "654321", "john@example.com")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerify_ResendInvalidatesPreviousCode(t *testing.T) {
	t.Parallel()

	f := &verificationFixture{
		parser: &stubParser{tokens: map[string]*auth.Claims{
			"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
		}},
		store:  newMemStore(),
		sender: &recordingSender{},
	}
	generator := &fixedGenerator{code: "111111"}
	f.service = NewVerificationService(
		f.parser, newTestRoleGate(), generator, f.store, f.sender, testTTL)

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")
	require.NoError(t, err)

	// Повторный запрос перезаписывает challenge
	generator.code = "222222"
	_, err = f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")
	require.NoError(t, err)

	verified, err := f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "111111", "john@example.com")
	require.NoError(t, err)
	assert.False(t, verified, "старый код аннулирован")

	verified, err = f.service.Verify(context.Background(), models.ChannelEmail,
		"token-1", "222222", "john@example.com")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_DiiaRequiresDrfoMatch(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("654321", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "1234567890", []string{"citizen"}),
	})

	// Challenge на чужой РНОКПП: код и адрес совпадут, но drfo - нет
	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelDiia,
		&dto.VerificationInput{Address: "9999999999"}, "token-1")
	require.NoError(t, err)

	verified, err := f.service.Verify(context.Background(), models.ChannelDiia,
		"token-1", "654321", "9999999999")
	require.NoError(t, err)
	assert.False(t, verified)

	// Собственный РНОКПП проходит
	_, err = f.service.SendVerificationCode(context.Background(), models.ChannelDiia,
		&dto.VerificationInput{Address: "1234567890"}, "token-1")
	require.NoError(t, err)

	verified, err = f.service.Verify(context.Background(), models.ChannelDiia,
		"token-1", "654321", "1234567890")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerify_CodesAreScopedPerChannel(t *testing.T) {
	t.Parallel()

	f := newVerificationFixture("654321", map[string]*auth.Claims{
		"token-1": makeClaims("user-1", "john", "", []string{"citizen"}),
	})

	_, err := f.service.SendVerificationCode(context.Background(), models.ChannelEmail,
		&dto.VerificationInput{Address: "john@example.com"}, "token-1")
	require.NoError(t, err)

	// Код выдан для email; для inbox challenge нет
	verified, err := f.service.Verify(context.Background(), models.ChannelInbox,
		"token-1", "654321", "john@example.com")
	require.NoError(t, err)
	assert.False(t, verified)
}
