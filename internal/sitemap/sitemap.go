package sitemap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jpmhone/folio/internal/blog"
	"github.com/jpmhone/folio/pkg/cache"
	"github.com/jpmhone/folio/pkg/file"
	"github.com/jpmhone/folio/pkg/handler"
	"github.com/jpmhone/folio/pkg/logger"
)

const (
	Namespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	ContentType = "application/xml; charset=utf-8"

	cacheKey     = "sitemap.xml"
	postPriority = 0.7
	postFreq     = "weekly"
)

var ErrPublish = errors.New("failed to publish sitemap")

type Config struct {
	SiteURL    string        `env:"SITE_URL" envDefault:"http://localhost:5173"`
	StaticFile string        `env:"SITEMAP_STATIC_FILE"`
	CacheTTL   time.Duration `env:"SITEMAP_CACHE_TTL" envDefault:"1h"`
	ObjectKey  string        `env:"SITEMAP_OBJECT_KEY" envDefault:"sitemap.xml"`
}

// PostLister lists published posts; blog.PGStore implements it.
type PostLister interface {
	ListPublished(ctx context.Context) ([]blog.Post, error)
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type Generator struct {
	cfg    Config
	static []Entry
	posts  PostLister
	cache  cache.Cache
	log    *slog.Logger
}

type Option func(*Generator)

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithEntries replaces the static pages.
func WithEntries(entries []Entry) Option {
	return func(g *Generator) {
		g.static = entries
	}
}

func NewGenerator(cfg Config, posts PostLister, c cache.Cache, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		static: DefaultEntries(),
		posts:  posts,
		cache:  c,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build renders the sitemap. A failure to list posts is logged and the
// sitemap is built from the static pages alone.
func (g *Generator) Build(ctx context.Context) ([]byte, error) {
	base := strings.TrimRight(g.cfg.SiteURL, "/")
	set := urlset{Xmlns: Namespace}

	for _, e := range g.static {
		set.URLs = append(set.URLs, url{
			Loc:        base + e.Path,
			ChangeFreq: e.ChangeFreq,
			Priority:   formatPriority(e.Priority),
		})
	}

	posts, err := g.posts.ListPublished(ctx)
	if err != nil {
		g.log.WarnContext(ctx, "sitemap built without posts", logger.Error(err))
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, url{
			Loc:        blog.PostURL(base, p.Slug),
			LastMod:    p.UpdatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: postFreq,
			Priority:   formatPriority(postPriority),
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// Cached returns the sitemap from cache, building it on a miss.
func (g *Generator) Cached(ctx context.Context) ([]byte, error) {
	return cache.Load(ctx, g.cache, cacheKey, g.cfg.CacheTTL, g.Build, func(err error) {
		g.log.WarnContext(ctx, "sitemap cache unavailable", logger.Error(err))
	})
}

// Handle serves GET /sitemap.xml.
func (g *Generator) Handle(ctx handler.Context, _ struct{}) handler.Response {
	body, err := g.Cached(ctx)
	if err != nil {
		g.log.ErrorContext(ctx, "failed to build sitemap", logger.Error(err))
		return handler.JSONError(handler.ErrInternalServerError)
	}
	return handler.Bytes(ContentType, body,
		handler.WithHeader("Cache-Control", "public, max-age="+strconv.Itoa(int(g.cfg.CacheTTL.Seconds()))))
}

// Publish builds the sitemap and writes it to storage under cfg.ObjectKey.
func (g *Generator) Publish(ctx context.Context, storage file.Storage) (*file.File, error) {
	body, err := g.Build(ctx)
	if err != nil {
		return nil, errors.Join(ErrPublish, err)
	}
	key := g.cfg.ObjectKey
	if key == "" {
		key = cacheKey
	}
	f, err := storage.Put(ctx, key, bytes.NewReader(body), ContentType)
	if err != nil {
		return nil, errors.Join(ErrPublish, err)
	}
	if err := g.cache.Delete(ctx, cacheKey); err != nil {
		g.log.WarnContext(ctx, "failed to drop cached sitemap", logger.Error(err))
	}
	g.log.InfoContext(ctx, "sitemap published", slog.String("url", f.URL), slog.Int64("size", f.Size))
	return f, nil
}
