package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jpmhone/folio/internal/blog"
	"github.com/jpmhone/folio/internal/comment"
	"github.com/jpmhone/folio/internal/like"
	"github.com/jpmhone/folio/internal/newsletter"
	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/pkg/binder"
	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/handler"
	"github.com/jpmhone/folio/pkg/httpserver"
	"github.com/jpmhone/folio/pkg/ratelimiter"
	"github.com/jpmhone/folio/pkg/requestid"
)

type Config struct {
	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

// Subscribers is implemented by *subscriber.Service.
type Subscribers interface {
	Preview(ctx context.Context, token string) (subscriber.Subscriber, error)
	Unsubscribe(ctx context.Context, token string) (subscriber.Subscriber, error)
	Subscribe(ctx context.Context, email, name string) (subscriber.Subscriber, error)
}

// Newsletters is implemented by *newsletter.Service.
type Newsletters interface {
	Send(ctx context.Context, issue newsletter.Issue) (newsletter.Report, error)
}

// Comments is implemented by *comment.Service.
type Comments interface {
	Thread(ctx context.Context, postID uuid.UUID) ([]*comment.Thread, error)
	Post(ctx context.Context, in comment.NewComment) (comment.Comment, error)
	React(ctx context.Context, r comment.Reaction) (comment.Counts, error)
}

// Likes is implemented by *like.Service.
type Likes interface {
	Toggle(ctx context.Context, postID uuid.UUID, ip string) (like.Status, error)
	Status(ctx context.Context, postID uuid.UUID, ip string) (like.Status, error)
}

// RouterOptions selects what gets mounted. Nil services are skipped, so
// tests and partial deployments can wire only what they need.
type RouterOptions struct {
	Config      Config
	Logger      *slog.Logger
	ClientIP    *clientip.Resolver
	RateLimit   *ratelimiter.Bucket
	Checks      []httpserver.Check
	// ProbeTimeout bounds each readiness check.
	ProbeTimeout time.Duration
	Subscribers Subscribers
	Newsletters Newsletters
	Comments    Comments
	Likes       Likes
	BlogPages   handler.HandlerFunc[blog.PageRequest]
	Sitemap     handler.HandlerFunc[struct{}]
}

// Router builds the HTTP surface of the service.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	err := srv.Run(ctx, web.Router(web.RouterOptions{...}))
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ips := opts.ClientIP
	if ips == nil {
		ips = clientip.New(clientip.Config{})
	}

	jsonErrors := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{})
	pageErrors := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: errorPage})
	limited := rateLimit(opts.RateLimit, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, ips.Middleware, accessLog(log), middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, opts.ProbeTimeout, opts.Checks...))

	if opts.Subscribers != nil {
		u := &unsubscribeHandlers{svc: opts.Subscribers}
		r.Get("/unsubscribe/{token}", handler.Wrap(u.confirm,
			handler.WithBinders[tokenRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[tokenRequest](pageErrors),
		))
		r.With(limited).Post("/unsubscribe/{token}", handler.Wrap(u.unsubscribePage,
			handler.WithBinders[tokenRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[tokenRequest](pageErrors),
		))
		r.With(limited).Post("/api/unsubscribe/{token}", handler.Wrap(u.unsubscribeJSON,
			handler.WithBinders[tokenRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[tokenRequest](jsonErrors),
		))
		r.With(limited).Post("/api/subscribers", handler.Wrap(u.subscribe,
			handler.WithBinders[subscribeRequest](binder.JSON()),
			handler.WithErrorHandler[subscribeRequest](jsonErrors),
		))
	}

	if opts.Newsletters != nil {
		n := &newsletterHandlers{svc: opts.Newsletters}
		r.With(adminAuth(opts.Config, log)).Post("/api/admin/newsletters", handler.Wrap(n.send,
			handler.WithBinders[newsletter.Issue](binder.JSON()),
			handler.WithErrorHandler[newsletter.Issue](jsonErrors),
		))
	}

	if opts.Comments != nil {
		c := &commentHandlers{svc: opts.Comments}
		r.Get("/api/posts/{postID}/comments", handler.Wrap(c.list,
			handler.WithBinders[threadRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[threadRequest](jsonErrors),
		))
		r.With(limited).Post("/api/posts/{postID}/comments", handler.Wrap(c.create,
			handler.WithBinders[createCommentRequest](binder.Path(chi.URLParam), binder.JSON()),
			handler.WithErrorHandler[createCommentRequest](jsonErrors),
		))
		r.With(limited).Post("/api/comments/{commentID}/reactions", handler.Wrap(c.react,
			handler.WithBinders[reactionRequest](binder.Path(chi.URLParam), binder.JSON()),
			handler.WithErrorHandler[reactionRequest](jsonErrors),
		))
	}

	if opts.Likes != nil {
		l := &likeHandlers{svc: opts.Likes}
		r.Get("/api/posts/{postID}/likes", handler.Wrap(l.status,
			handler.WithBinders[postLikesRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[postLikesRequest](jsonErrors),
		))
		r.With(limited).Post("/api/posts/{postID}/likes", handler.Wrap(l.toggle,
			handler.WithBinders[postLikesRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[postLikesRequest](jsonErrors),
		))
	}

	if opts.BlogPages != nil {
		r.Get("/ssr/blog/{slug}", handler.Wrap(opts.BlogPages,
			handler.WithBinders[blog.PageRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[blog.PageRequest](pageErrors),
		))
	}

	if opts.Sitemap != nil {
		r.Get("/sitemap.xml", handler.Wrap(opts.Sitemap,
			handler.WithErrorHandler[struct{}](pageErrors),
		))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})

	return r
}
