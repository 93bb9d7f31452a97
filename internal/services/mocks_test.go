package services

import (
	"context"
	"fmt"
	"time"

	"settings_backend/internal/audit"
	"settings_backend/internal/auth"
	"settings_backend/internal/models"
	"settings_backend/internal/notification"
	"settings_backend/internal/otp"
	"settings_backend/internal/repositories"
)

// makeClaims собирает Claims для тестов без подписи реального токена.
func makeClaims(sub, username, drfo string, roles []string) *auth.Claims {
	c := &auth.Claims{Username: username, Drfo: drfo}
	c.Subject = sub
	c.RealmAccess.Roles = roles
	return c
}

// stubParser выдает заранее подготовленные Claims по строке токена.
type stubParser struct {
	tokens map[string]*auth.Claims
}

func (p *stubParser) Parse(accessToken string) (*auth.Claims, error) {
	claims, ok := p.tokens[accessToken]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

// memStore - хранилище challenge в памяти.
type memStore struct {
	data map[string]otp.Challenge
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]otp.Challenge)}
}

func (s *memStore) Save(ctx context.Context, key string, challenge otp.Challenge) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = challenge
	return nil
}

func (s *memStore) Find(ctx context.Context, key string) (*otp.Challenge, error) {
	if s.err != nil {
		return nil, s.err
	}
	challenge, ok := s.data[key]
	if !ok {
		return nil, otp.ErrChallengeNotFound
	}
	return &challenge, nil
}

// fixedGenerator выдает один и тот же код.
type fixedGenerator struct {
	code string
}

func (g *fixedGenerator) Generate() string {
	return g.code
}

// recordingSender запоминает отправленные сообщения.
type recordingSender struct {
	sent []notification.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg notification.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

// memSettingsRepo - репозиторий настроек в памяти.
type memSettingsRepo struct {
	byKeycloakID map[string]*models.Settings
	nextID       int
	err          error
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{byKeycloakID: make(map[string]*models.Settings)}
}

func (r *memSettingsRepo) FindByKeycloakID(keycloakID string) (*models.Settings, error) {
	if r.err != nil {
		return nil, r.err
	}
	settings, ok := r.byKeycloakID[keycloakID]
	if !ok {
		return nil, repositories.ErrSettingsNotFound
	}
	return settings, nil
}

func (r *memSettingsRepo) GetOrCreateByKeycloakID(keycloakID string) (*models.Settings, error) {
	if r.err != nil {
		return nil, r.err
	}
	if settings, ok := r.byKeycloakID[keycloakID]; ok {
		return settings, nil
	}
	r.nextID++
	settings := &models.Settings{KeycloakID: keycloakID}
	settings.ID = fmt.Sprintf("settings-%d", r.nextID)
	r.byKeycloakID[keycloakID] = settings
	return settings, nil
}

// memChannelRepo - репозиторий записей каналов в памяти.
type memChannelRepo struct {
	records []*models.NotificationChannel
	nextID  int
	err     error
}

func newMemChannelRepo() *memChannelRepo {
	return &memChannelRepo{}
}

func (r *memChannelRepo) FindBySettingsID(settingsID string) ([]models.NotificationChannel, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.NotificationChannel
	for _, record := range r.records {
		if record.SettingsID == settingsID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (r *memChannelRepo) FindBySettingsAndChannel(settingsID string, channel models.Channel) (*models.NotificationChannel, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, record := range r.records {
		if record.SettingsID == settingsID && record.Channel == channel {
			copied := *record
			return &copied, nil
		}
	}
	return nil, repositories.ErrChannelNotFound
}

func (r *memChannelRepo) Create(settingsID string, channel models.Channel, address *string, activated bool, deactivationReason *string) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	record := &models.NotificationChannel{
		SettingsID:         settingsID,
		Channel:            channel,
		Address:            address,
		IsActivated:        activated,
		DeactivationReason: deactivationReason,
	}
	record.ID = fmt.Sprintf("channel-%d", r.nextID)
	r.records = append(r.records, record)
	return nil
}

func (r *memChannelRepo) Activate(id string, address string, updatedAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	for _, record := range r.records {
		if record.ID == id {
			record.Address = &address
			record.IsActivated = true
			record.DeactivationReason = nil
			record.UpdatedAt = updatedAt
			return nil
		}
	}
	return repositories.ErrChannelNotFound
}

func (r *memChannelRepo) Deactivate(id string, address *string, deactivationReason string, updatedAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	for _, record := range r.records {
		if record.ID == id {
			if address != nil {
				record.Address = address
			}
			record.IsActivated = false
			record.DeactivationReason = &deactivationReason
			record.UpdatedAt = updatedAt
			return nil
		}
	}
	return repositories.ErrChannelNotFound
}

// memInboxRepo - inbox-сообщения в памяти.
type memInboxRepo struct {
	messages []models.InboxMessage
	nextID   int
	err      error
}

func newMemInboxRepo() *memInboxRepo {
	return &memInboxRepo{}
}

func (r *memInboxRepo) Create(message *models.InboxMessage) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	message.ID = fmt.Sprintf("inbox-%d", r.nextID)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memInboxRepo) FindByRecipient(recipientID string, limit, offset int) ([]models.InboxMessage, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var matched []models.InboxMessage
	for _, message := range r.messages {
		if message.RecipientID == recipientID {
			matched = append(matched, message)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// recordingSink запоминает факты аудита.
type recordingSink struct {
	facts []audit.Fact
	err   error
}

func (s *recordingSink) Send(ctx context.Context, fact audit.Fact) error {
	if s.err != nil {
		return s.err
	}
	s.facts = append(s.facts, fact)
	return nil
}
