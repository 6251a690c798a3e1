package comment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/sanitizer"
	"github.com/jpmhone/folio/pkg/validator"
)

// NewComment is a reader submission.
type NewComment struct {
	PostID      uuid.UUID
	ParentID    *uuid.UUID
	AuthorName  string
	AuthorEmail string
	Content     string
}

type Service struct {
	cfg   Config
	store Store
	now   func() time.Time
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

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(cfg Config, store Store, opts ...Option) *Service {
	if cfg.MaxContentLength <= 0 {
		cfg.MaxContentLength = 5000
	}
	s := &Service{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Thread returns the approved comments of a post as nested threads.
func (s *Service) Thread(ctx context.Context, postID uuid.UUID) ([]*Thread, error) {
	comments, err := s.store.ListApproved(ctx, postID)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return BuildThreads(comments), nil
}

var cleanName = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)
var cleanContent = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim)

// Post stores a submission. Invalid fields are reported together as a
// validator.ValidationErrors. New comments await moderation unless
// RequireApproval is off.
func (s *Service) Post(ctx context.Context, in NewComment) (Comment, error) {
	name := cleanName(in.AuthorName)
	addr := strings.ToLower(sanitizer.Trim(in.AuthorEmail))
	content := cleanContent(in.Content)

	if err := validator.Apply(
		validator.RequiredString("author_name", name),
		validator.MaxLenString("author_name", name, maxNameLength),
		validator.ValidEmail("author_email", addr),
		validator.RequiredString("content", content),
		validator.MaxLenString("content", content, s.cfg.MaxContentLength),
	); err != nil {
		return Comment{}, err
	}

	created, err := s.store.Create(ctx, Comment{
		ID:          uuid.New(),
		PostID:      in.PostID,
		ParentID:    in.ParentID,
		AuthorName:  name,
		AuthorEmail: addr,
		Content:     content,
		Approved:    !s.cfg.RequireApproval,
		CreatedAt:   s.now().UTC(),
	})
	switch {
	case errors.Is(err, ErrPostNotFound):
		return Comment{}, err
	case err != nil:
		return Comment{}, errors.Join(ErrUnavailable, err)
	}

	s.log.InfoContext(ctx, "comment submitted",
		slog.String("comment_id", created.ID.String()),
		slog.String("post_id", created.PostID.String()),
		slog.Bool("approved", created.Approved))
	return created, nil
}

// React records a like or dislike and returns the updated counts.
func (s *Service) React(ctx context.Context, r Reaction) (Counts, error) {
	r.Email = strings.ToLower(sanitizer.Trim(r.Email))
	r.IP = sanitizer.Trim(r.IP)
	if err := validator.Apply(
		validator.ValidEmail("email", r.Email),
		validator.RequiredString("ip", r.IP),
	); err != nil {
		return Counts{}, errors.Join(ErrInvalidReaction, err)
	}

	counts, err := s.store.React(ctx, r)
	switch {
	case errors.Is(err, ErrNotFound):
		return Counts{}, err
	case err != nil:
		s.log.ErrorContext(ctx, "failed to record reaction",
			slog.String("comment_id", r.CommentID.String()), logger.Error(err))
		return Counts{}, errors.Join(ErrUnavailable, err)
	}
	return counts, nil
}
