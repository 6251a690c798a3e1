package cache

import (
	"context"
	"time"
)

// Cache stores rendered byte payloads (SSR pages, sitemap XML).
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns ok=false when the key is absent or expired.
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	// Set stores val for ttl. Zero ttl means the entry never expires.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Load returns the cached value for key or computes it with fill and stores
// the result for ttl. Cache read and write failures are not fatal: the fresh
// value is still returned and the failure is reported through onErr when set.
func Load(ctx context.Context, c Cache, key string, ttl time.Duration, fill func(context.Context) ([]byte, error), onErr func(error)) ([]byte, error) {
	if val, ok, err := c.Get(ctx, key); err == nil && ok {
		return val, nil
	} else if err != nil && onErr != nil {
		onErr(err)
	}

	val, err := fill(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, val, ttl); err != nil && onErr != nil {
		onErr(err)
	}
	return val, nil
}
