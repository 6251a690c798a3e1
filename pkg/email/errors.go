package email

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("email: invalid configuration")
	ErrInvalidParams = errors.New("email: invalid message")
	ErrSend          = errors.New("email: delivery failed")
)

func wrapConfig(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidConfig, msg) }

func wrapParams(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidParams, msg) }
