package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jpmhone/folio/pkg/cache"
	"github.com/jpmhone/folio/pkg/handler"
	"github.com/jpmhone/folio/pkg/logger"
	slugs "github.com/jpmhone/folio/pkg/slug"
)

// BotDetector reports whether a User-Agent belongs to a crawler.
type BotDetector interface {
	IsBot(userAgent string) bool
}

// PageRequest is bound from GET /ssr/blog/{slug}.
type PageRequest struct {
	Slug string `path:"slug"`
}

// Renderer serves server-rendered post pages to crawlers and redirects
// people to the client-side app.
type Renderer struct {
	cfg   Config
	store Store
	cache cache.Cache
	bots  BotDetector
	log   *slog.Logger
}

type RendererOption func(*Renderer)

func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRenderer(cfg Config, store Store, c cache.Cache, bots BotDetector, opts ...RendererOption) *Renderer {
	r := &Renderer{
		cfg:   cfg,
		store: store,
		cache: c,
		bots:  bots,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func cacheKey(slug string) string {
	return "ssr:" + slug
}

// Handle is the handler.HandlerFunc for the SSR route.
func (rd *Renderer) Handle(ctx handler.Context, req PageRequest) handler.Response {
	slug := strings.TrimSpace(req.Slug)
	if !slugs.Valid(slug) {
		return handler.Templ(NotFoundPage(), handler.WithStatus(http.StatusNotFound))
	}

	if !rd.bots.IsBot(ctx.Request().UserAgent()) {
		return handler.RedirectWithCode(PostURL(rd.cfg.SiteURL, slug), http.StatusFound)
	}

	page, err := rd.Render(ctx, slug)
	switch {
	case errors.Is(err, ErrNotFound):
		return handler.Templ(NotFoundPage(), handler.WithStatus(http.StatusNotFound), handler.WithHeader("Vary", "User-Agent"))
	case err != nil:
		rd.log.ErrorContext(ctx, "failed to render post", logger.Slug(slug), logger.Error(err))
		return handler.Templ(ErrorPage(), handler.WithStatus(http.StatusInternalServerError))
	}

	return handler.HTML(page,
		handler.WithHeader("Vary", "User-Agent"),
		handler.WithHeader("Cache-Control", fmt.Sprintf("public, max-age=%d", int(rd.cfg.CacheTTL.Seconds()))),
	)
}

// Render returns the page for slug, from cache when possible.
// Only successfully rendered pages are cached.
func (rd *Renderer) Render(ctx context.Context, slug string) ([]byte, error) {
	if !slugs.Valid(slug) {
		return nil, ErrNotFound
	}
	return cache.Load(ctx, rd.cache, cacheKey(slug), rd.cfg.CacheTTL, func(ctx context.Context) ([]byte, error) {
		post, err := rd.store.FindPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := Page(post, NewMeta(post, rd.cfg.SiteURL, rd.cfg.Author)).Render(ctx, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}, func(err error) {
		rd.log.WarnContext(ctx, "ssr cache unavailable", logger.Slug(slug), logger.Error(err))
	})
}

// Invalidate drops the cached page for slug.
func (rd *Renderer) Invalidate(ctx context.Context, slug string) error {
	return rd.cache.Delete(ctx, cacheKey(slug))
}
