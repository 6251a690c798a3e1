package redis

import "time"

// Config is optional: an empty ConnectionURL means the process runs without
// Redis and falls back to in-memory caching.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // Format: redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // Connect attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // Delay between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // Upper bound for the whole connect loop.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"folio:"`   // Namespace for cache keys.
}

// Enabled reports whether a Redis URL was configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
