package unsubtoken

import "time"

type Config struct {
	Secret string        `env:"UNSUBSCRIBE_SIGNING_SECRET,required"`
	TTL    time.Duration `env:"UNSUBSCRIBE_TOKEN_TTL" envDefault:"720h"`
}

// NewFromConfig creates a Signer from environment configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Signer, error) {
	return New(cfg.Secret, append([]Option{WithTTL(cfg.TTL)}, opts...)...)
}
