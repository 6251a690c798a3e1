package email

import (
	"context"
	"fmt"
	"strings"
)

// New builds the sender selected by cfg.Provider.
func New(ctx context.Context, cfg Config) (EmailSender, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderPostmark:
		return NewPostmarkClient(cfg)
	case ProviderSES:
		return NewSESSender(ctx, cfg)
	case "", ProviderDev:
		return NewDevSender(cfg.DevOutputDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
