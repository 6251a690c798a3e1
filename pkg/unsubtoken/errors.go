package unsubtoken

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSecret = errors.New("unsubtoken: missing signing secret")
	ErrWeakSecret    = fmt.Errorf("unsubtoken: signing secret must be at least %d bytes", MinSecretLength)
	ErrInvalidInput  = errors.New("unsubtoken: subscriber id and email are required")

	// ErrInvalidToken is the parent of every verification failure.
	ErrInvalidToken = errors.New("unsubtoken: invalid token")

	ErrMalformed         = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrSignatureMismatch = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrExpired           = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrWrongPurpose      = fmt.Errorf("%w: wrong purpose", ErrInvalidToken)
)
