package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-files-manager/internal/config"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisCache connects to the Redis server described by cfg.
//
// The connection is verified lazily; callers that need to fail fast should
// call Ping.
func NewRedisCache(cfg config.Cache, log *logger.Logger) Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	log.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("redis cache created")
	return newRedisCache(client, log)
}

func newRedisCache(client *redis.Client, log *logger.Logger) *redisCache {
	return &redisCache{client: client, logger: log}
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

func (c *redisCache) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %q: %w", key, err)
	}
	return removed > 0, nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
