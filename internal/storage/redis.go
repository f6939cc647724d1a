package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"cvoptimizer/internal/config"
	"cvoptimizer/internal/errors"

	"github.com/redis/go-redis/v9"
)

// redisClient is the part of *redis.Client the store uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisStore keeps each slot under one key without expiry.
type RedisStore struct {
	client redisClient
	prefix string
}

// NewRedisStore parses the URL and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid redis url", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "redis ping failed", err)
	}

	return newRedisStore(client, cfg.KeyPrefix), nil
}

func newRedisStore(client redisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(kind Kind) string {
	return s.prefix + string(kind)
}

func (s *RedisStore) Save(ctx context.Context, kind Kind, text string) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	key := s.key(kind)
	if err := s.client.Set(ctx, key, text, 0).Err(); err != nil {
		return "", saveError(kind, err)
	}
	return fmt.Sprintf("redis://%s", key), nil
}

func (s *RedisStore) Get(ctx context.Context, kind Kind) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	text, err := s.client.Get(ctx, s.key(kind)).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", readError(kind, err)
	}
	return text, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
