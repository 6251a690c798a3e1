package unsubtoken

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// PurposeUnsubscribe is the purpose claim of newsletter unsubscribe tokens.
	PurposeUnsubscribe = "unsubscribe"

	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 30 * 24 * time.Hour

	// MinSecretLength matches the HMAC-SHA256 block of entropy we expect.
	MinSecretLength = 32
)

// Claims are the trusted values recovered from a verified token.
type Claims struct {
	SubscriberID string
	Email        string
}

// tokenClaims is the wire form of the payload segment.
type tokenClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Option configures a Signer.
type Option func(*Signer)

// WithTTL overrides the token lifetime. Non-positive values are ignored.
func WithTTL(d time.Duration) Option {
	return func(s *Signer) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPurpose binds the Signer to a purpose other than PurposeUnsubscribe.
func WithPurpose(purpose string) Option {
	return func(s *Signer) {
		if purpose != "" {
			s.purpose = purpose
		}
	}
}

// Signer issues and verifies tokens for a single purpose.
// It is immutable after New and safe for concurrent use.
type Signer struct {
	secret  []byte
	ttl     time.Duration
	purpose string
	now     func() time.Time
	parser  *jwt.Parser
}

// New creates a Signer. The secret must be a dedicated value of at least
// MinSecretLength bytes; never reuse a password or another service key.
func New(secret string, opts ...Option) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	s := &Signer{
		secret:  []byte(secret),
		ttl:     DefaultTTL,
		purpose: PurposeUnsubscribe,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)

	return s, nil
}

// Purpose returns the purpose claim this Signer issues and accepts.
func (s *Signer) Purpose() string { return s.purpose }

// Issue mints a token for the subscriber. It has no side effects.
func (s *Signer) Issue(subscriberID, email string) (string, error) {
	if strings.TrimSpace(subscriberID) == "" || strings.TrimSpace(email) == "" {
		return "", ErrInvalidInput
	}

	now := s.now()
	claims := tokenClaims{
		Email:   email,
		Purpose: s.purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subscriberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the token and returns its claims. Any failure wraps
// ErrInvalidToken; see the package documentation for the concrete kinds.
func (s *Signer) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if strings.Contains(token, "%") {
		unescaped, err := url.PathUnescape(token)
		if err != nil {
			return Claims{}, errors.Join(ErrMalformed, err)
		}
		token = unescaped
	}
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	var claims tokenClaims
	_, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if claims.Purpose != s.purpose {
		return Claims{}, ErrWrongPurpose
	}
	if claims.Subject == "" || claims.Email == "" {
		return Claims{}, ErrMalformed
	}

	return Claims{SubscriberID: claims.Subject, Email: claims.Email}, nil
}

// UnsubscribeURL issues a token and embeds it into <baseURL>/unsubscribe/<token>.
func (s *Signer) UnsubscribeURL(baseURL, subscriberID, email string) (string, error) {
	tok, err := s.Issue(subscriberID, email)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + "/unsubscribe/" + url.PathEscape(tok), nil
}

// classify maps jwt parser errors onto the package taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Join(ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrSignatureMismatch, err)
	default:
		return errors.Join(ErrMalformed, err)
	}
}
