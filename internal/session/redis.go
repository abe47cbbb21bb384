package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"stockcast/pkg/redis"
)

const redisKeyPrefix = "stockcast:session:"

// RedisStore is the Redis-backed session backend. Tokens expire through
// the key TTL, so DeleteExpired is a no-op.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Create mints a token bound to the user id.
func (s *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()

	err := s.client.Redis().Set(ctx, redisKeyPrefix+token, userID, s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token to its user id.
func (s *RedisStore) Get(ctx context.Context, token string) (int64, bool, error) {
	value, err := s.client.Redis().Get(ctx, redisKeyPrefix+token).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("decode session value: %w", err)
	}
	return userID, true, nil
}

// Delete invalidates a token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Redis().Del(ctx, redisKeyPrefix+token).Err()
}

// DeleteExpired is a no-op; Redis expires session keys itself.
func (s *RedisStore) DeleteExpired(context.Context) error {
	return nil
}
