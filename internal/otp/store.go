package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"settings_backend/internal/models"
)

var ErrChallengeNotFound = errors.New("verification challenge not found or expired")

const keyPrefix = "otp:"

// Challenge - ожидающая попытка подтверждения канала: адрес, на который
// ушел код, и сам код. Живет в хранилище не дольше TTL.
type Challenge struct {
	Address string `json:"address"`
	Code    string `json:"verificationCode"`
}

// Store - хранилище challenge по ключу "{userId}/{channel}".
// Save перезаписывает предыдущий challenge этого ключа и заново
// взводит TTL; Find по истекшему ключу возвращает ErrChallengeNotFound.
type Store interface {
	Save(ctx context.Context, key string, challenge Challenge) error
	Find(ctx context.Context, key string) (*Challenge, error)
}

// Key строит ключ challenge для пары пользователь+канал.
func Key(userID string, channel models.Channel) string {
	return fmt.Sprintf("%s/%s", userID, channel.String())
}

// RedisStore - реализация Store на Redis: TTL вытесняет записи сам,
// отдельной очистки не требуется.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, key string, challenge Challenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, key string) (*Challenge, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read challenge: %w", err)
	}

	var challenge Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}
	return &challenge, nil
}
