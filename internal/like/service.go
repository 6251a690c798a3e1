package like

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/sanitizer"
	"github.com/jpmhone/folio/pkg/validator"
)

type Service struct {
	store Store
	log   *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle likes the post for ip, or withdraws the like ip already gave.
func (s *Service) Toggle(ctx context.Context, postID uuid.UUID, ip string) (Status, error) {
	ip, err := clientAddr(ip)
	if err != nil {
		return Status{}, err
	}
	st, err := s.store.Toggle(ctx, postID, ip)
	if err != nil {
		return Status{}, s.storeError(ctx, "failed to toggle like", postID, err)
	}
	s.log.DebugContext(ctx, "post like toggled",
		slog.String("post_id", postID.String()), slog.Bool("liked", st.Liked))
	return st, nil
}

// Status reports the like count of a post and whether ip likes it.
func (s *Service) Status(ctx context.Context, postID uuid.UUID, ip string) (Status, error) {
	ip, err := clientAddr(ip)
	if err != nil {
		return Status{}, err
	}
	st, err := s.store.Status(ctx, postID, ip)
	if err != nil {
		return Status{}, s.storeError(ctx, "failed to read likes", postID, err)
	}
	return st, nil
}

func clientAddr(ip string) (string, error) {
	ip = sanitizer.Trim(ip)
	if err := validator.Apply(validator.RequiredString("ip", ip)); err != nil {
		return "", errors.Join(ErrInvalidClient, err)
	}
	return ip, nil
}

func (s *Service) storeError(ctx context.Context, msg string, postID uuid.UUID, err error) error {
	if errors.Is(err, ErrPostNotFound) {
		return err
	}
	s.log.ErrorContext(ctx, msg, slog.String("post_id", postID.String()), logger.Error(err))
	return errors.Join(ErrUnavailable, err)
}
