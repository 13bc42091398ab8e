package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

const (
	sessionKeyPrefix  = "session:"
	idempotencyKeyTTL = 24 * time.Hour
)

var _ port.CacheRepository = (*RedisAdapter)(nil)

type RedisAdapter struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisAdapter(client *redis.Client, sessionTTL time.Duration) *RedisAdapter {
	return &RedisAdapter{client: client, sessionTTL: sessionTTL}
}

func (r *RedisAdapter) SaveSession(ctx context.Context, token string, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, sessionKeyPrefix+token, data, r.sessionTTL).Err()
}

func (r *RedisAdapter) LoadSession(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *RedisAdapter) DeleteSession(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKeyPrefix+token).Err()
}

func (r *RedisAdapter) SetIdempotency(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

func (r *RedisAdapter) ReleaseIdempotency(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
