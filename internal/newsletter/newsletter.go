package newsletter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/pkg/async"
	"github.com/jpmhone/folio/pkg/email"
	"github.com/jpmhone/folio/pkg/email/templates"
	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/validator"
)

const tag = "newsletter"

var (
	ErrInvalidIssue    = errors.New("invalid newsletter issue")
	ErrListRecipients  = errors.New("failed to list newsletter recipients")
	ErrRenderFailed    = errors.New("failed to render newsletter")
	ErrUnsubscribeLink = errors.New("failed to build unsubscribe link")
)

type Config struct {
	PublicURL   string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	Concurrency int           `env:"NEWSLETTER_CONCURRENCY" envDefault:"4"`
	SendTimeout time.Duration `env:"NEWSLETTER_SEND_TIMEOUT" envDefault:"15m"` // bounds one Send after it detaches from the caller
}

const defaultSendTimeout = 15 * time.Minute

// Issue is one newsletter edition. Content is plain text; line breaks are
// preserved in the rendered email.
type Issue struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

const maxSubjectLength = 200

func (i Issue) Validate() error {
	if err := validator.Apply(
		validator.RequiredString("subject", i.Subject),
		validator.MaxLenString("subject", i.Subject, maxSubjectLength),
		validator.RequiredString("content", i.Content),
	); err != nil {
		return errors.Join(ErrInvalidIssue, err)
	}
	return nil
}

// Report summarises a Send call.
type Report struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// Recipients lists who receives an issue.
type Recipients interface {
	ListActive(ctx context.Context) ([]subscriber.Subscriber, error)
}

// LinkIssuer builds signed unsubscribe links; *unsubtoken.Signer implements it.
type LinkIssuer interface {
	UnsubscribeURL(baseURL, subscriberID, email string) (string, error)
}

type Service struct {
	cfg        Config
	recipients Recipients
	links      LinkIssuer
	sender     email.EmailSender
	log        *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(cfg Config, recipients Recipients, links LinkIssuer, sender email.EmailSender, opts ...Option) *Service {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	s := &Service{
		cfg:        cfg,
		recipients: recipients,
		links:      links,
		sender:     sender,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send delivers issue to every active subscriber. A failed delivery is
// logged and counted; it never stops the remaining sends.
//
// Once recipients are listed, delivery ignores cancellation of ctx and is
// bounded by Config.SendTimeout instead: an admin closing the request must
// not leave part of the list unmailed.
func (s *Service) Send(ctx context.Context, issue Issue) (Report, error) {
	if err := issue.Validate(); err != nil {
		return Report{}, err
	}

	subs, err := s.recipients.ListActive(ctx)
	if err != nil {
		return Report{}, errors.Join(ErrListRecipients, err)
	}
	if len(subs) == 0 {
		return Report{}, nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SendTimeout)
	defer cancel()

	start := time.Now()
	errs := async.ForEach(ctx, s.cfg.Concurrency, subs, func(ctx context.Context, sub subscriber.Subscriber) error {
		err := s.deliver(ctx, issue, sub)
		if err != nil {
			s.log.WarnContext(ctx, "newsletter delivery failed",
				logger.SubscriberID(sub.ID.String()),
				logger.Recipient(sub.Email),
				logger.Error(err))
		}
		return err
	})

	sent, failed := async.Count(errs)
	report := Report{Recipients: len(subs), Sent: sent, Failed: failed}
	s.log.InfoContext(ctx, "newsletter sent",
		slog.String("subject", issue.Subject),
		slog.Int("recipients", report.Recipients),
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		logger.Duration(time.Since(start)))
	return report, nil
}

func (s *Service) deliver(ctx context.Context, issue Issue, sub subscriber.Subscriber) error {
	link, err := s.links.UnsubscribeURL(s.cfg.PublicURL, sub.ID.String(), sub.Email)
	if err != nil {
		return errors.Join(ErrUnsubscribeLink, err)
	}

	html, err := templates.Render(ctx, Email(issue, link))
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:          sub.Email,
		Subject:         issue.Subject,
		BodyHTML:        html,
		Tag:             tag,
		ListUnsubscribe: link,
	})
}
