package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

const keyPrefix = "kasir:cart:"

// Store реализует repository.Store используя Redis строки
type Store struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration // 0 - без истечения
}

// NewStore создаёт Redis store; ttl обновляется при каждой записи
func NewStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func storeKey(key string) string {
	return keyPrefix + key
}

// Get получает значение из Redis
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, storeKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		s.logger.Error("failed to get cart value from redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

// Set записывает значение в Redis (SET с TTL, если он задан)
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, storeKey(key), value, s.ttl).Err(); err != nil {
		s.logger.Error("failed to set cart value in redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	s.logger.Debug("cart value stored in redis",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("ttl", s.ttl),
	)
	return nil
}

// Remove удаляет ключ из Redis
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, storeKey(key)).Err(); err != nil {
		s.logger.Error("failed to delete cart value from redis",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
