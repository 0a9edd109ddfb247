package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brand_server/core/port/out"
)

// RedisExportCache stores rendered artifacts in Redis.
type RedisExportCache struct {
	client *redis.Client
	prefix string
}

var _ out.ExportCache = (*RedisExportCache)(nil)

// NewRedisClient parses url and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisExportCache wraps client. Keys are namespaced under prefix.
func NewRedisExportCache(client *redis.Client, prefix string) *RedisExportCache {
	if prefix == "" {
		prefix = "brand:export:"
	}
	return &RedisExportCache{client: client, prefix: prefix}
}

// Get returns out.ErrCacheMiss for absent keys.
func (c *RedisExportCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, out.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *RedisExportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}
