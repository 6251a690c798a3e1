package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a byte-oriented key/value store backed by Redis. It satisfies
// cache.Cache so rendered pages and the sitemap can be shared across
// instances.
type Cache struct {
	db     redis.UniversalClient
	prefix string
}

// NewCache wraps client; every key is stored under prefix.
func NewCache(client redis.UniversalClient, prefix string) *Cache {
	return &Cache{db: client, prefix: prefix}
}

// Get returns ok=false for missing keys (redis.Nil is not an error here).
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	val, err := c.db.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores val with the given TTL. Zero TTL means no expiration.
func (c *Cache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	return c.db.Set(ctx, c.prefix+key, val, ttl).Err()
}

// Delete removes a key. Empty keys are ignored.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return c.db.Del(ctx, c.prefix+key).Err()
}
