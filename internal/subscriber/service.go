package subscriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/unsubtoken"
	"github.com/jpmhone/folio/pkg/validator"
)

// Verifier checks unsubscribe tokens; *unsubtoken.Signer implements it.
type Verifier interface {
	Verify(token string) (unsubtoken.Claims, error)
}

type Service struct {
	cfg      Config
	store    Store
	verifier Verifier
	now      func() time.Time
	log      *slog.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService panics on nil dependencies so misconfiguration fails at startup.
func NewService(cfg Config, store Store, verifier Verifier, opts ...ServiceOption) *Service {
	if store == nil {
		panic("subscriber: Store is required")
	}
	if verifier == nil {
		panic("subscriber: Verifier is required")
	}

	s := &Service{
		cfg:      cfg,
		store:    store,
		verifier: verifier,
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview resolves the subscriber a token refers to without changing it.
func (s *Service) Preview(ctx context.Context, token string) (Subscriber, error) {
	_, sub, err := s.resolve(ctx, token)
	return sub, err
}

// Unsubscribe verifies token and deactivates the subscriber it names.
// Clicking the same link again succeeds without touching the record, also
// after the record was anonymized.
//
// The returned record carries the address the link was issued for, even
// when the stored row has just been anonymized.
func (s *Service) Unsubscribe(ctx context.Context, token string) (Subscriber, error) {
	claims, sub, err := s.resolve(ctx, token)
	if err != nil {
		return Subscriber{}, err
	}
	if !sub.Active {
		return sub, nil
	}

	now := s.now().UTC()
	d := Deactivation{At: now}
	if s.cfg.AnonymizeOnUnsubscribe {
		d.Email = fmt.Sprintf("unsubscribed_%d@%s", now.UnixNano(), anonymizedEmailDomain)
		d.Name = anonymizedName
	}

	updated, err := s.store.Deactivate(ctx, sub.ID, d)
	switch {
	case errors.Is(err, ErrNotFound):
		return Subscriber{}, ErrSubscriberNotFound
	case err != nil:
		s.log.ErrorContext(ctx, "failed to deactivate subscriber",
			logger.SubscriberID(sub.ID.String()), logger.Error(err))
		return Subscriber{}, errors.Join(ErrUnavailable, err)
	}

	s.log.InfoContext(ctx, "subscriber unsubscribed",
		logger.SubscriberID(sub.ID.String()),
		slog.Bool("anonymized", s.cfg.AnonymizeOnUnsubscribe))

	updated.Email = claims.Email
	return updated, nil
}

func (s *Service) resolve(ctx context.Context, token string) (unsubtoken.Claims, Subscriber, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		s.log.DebugContext(ctx, "unsubscribe token rejected", logger.Error(err))
		return unsubtoken.Claims{}, Subscriber{}, errors.Join(ErrInvalidLink, err)
	}

	// Tokens are only issued for stored ids; anything else cannot match a row.
	id, err := uuid.Parse(claims.SubscriberID)
	if err != nil {
		return unsubtoken.Claims{}, Subscriber{}, ErrSubscriberNotFound
	}

	sub, err := s.store.FindByIDAndEmail(ctx, id, claims.Email)
	if errors.Is(err, ErrNotFound) {
		sub, err = s.findAnonymized(ctx, id, claims.Email)
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return unsubtoken.Claims{}, Subscriber{}, ErrSubscriberNotFound
	case err != nil:
		s.log.ErrorContext(ctx, "failed to look up subscriber",
			logger.SubscriberID(claims.SubscriberID), logger.Error(err))
		return unsubtoken.Claims{}, Subscriber{}, errors.Join(ErrUnavailable, err)
	}
	return claims, sub, nil
}

// findAnonymized matches a record retired with anonymization, which only
// the id still ties to the link. It is reported under the address the link
// was issued for.
func (s *Service) findAnonymized(ctx context.Context, id uuid.UUID, address string) (Subscriber, error) {
	sub, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Subscriber{}, err
	}
	if sub.Active || !isAnonymized(sub.Email) {
		return Subscriber{}, ErrNotFound
	}
	sub.Email = address
	sub.Name = ""
	return sub, nil
}

const maxNameLength = 100

// Subscribe registers address, or reactivates it when it was previously
// unsubscribed without anonymization.
func (s *Service) Subscribe(ctx context.Context, address, name string) (Subscriber, error) {
	address = NormalizeEmail(address)
	name = strings.TrimSpace(name)
	if err := validator.Apply(
		validator.ValidEmail("email", address),
		validator.MaxLenString("name", name, maxNameLength),
	); err != nil {
		return Subscriber{}, errors.Join(ErrInvalidEmail, err)
	}
	now := s.now().UTC()

	created, err := s.store.Create(ctx, Subscriber{
		ID:           uuid.New(),
		Email:        address,
		Name:         name,
		Active:       true,
		SubscribedAt: now,
	})
	if err == nil {
		s.log.InfoContext(ctx, "subscriber created", logger.SubscriberID(created.ID.String()))
		return created, nil
	}
	if !errors.Is(err, ErrDuplicateEmail) {
		return Subscriber{}, errors.Join(ErrUnavailable, err)
	}

	existing, err := s.store.FindByEmail(ctx, address)
	if err != nil {
		return Subscriber{}, errors.Join(ErrUnavailable, err)
	}
	if existing.Active {
		return Subscriber{}, ErrAlreadySubscribed
	}

	if name == "" {
		name = existing.Name
	}
	reactivated, err := s.store.Reactivate(ctx, existing.ID, name, now)
	if err != nil {
		return Subscriber{}, errors.Join(ErrUnavailable, err)
	}
	s.log.InfoContext(ctx, "subscriber reactivated", logger.SubscriberID(reactivated.ID.String()))
	return reactivated, nil
}

// ListActive returns every subscriber currently receiving the newsletter.
func (s *Service) ListActive(ctx context.Context) ([]Subscriber, error) {
	subs, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return subs, nil
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
