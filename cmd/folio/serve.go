package main

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jpmhone/folio/internal/blog"
	"github.com/jpmhone/folio/internal/comment"
	"github.com/jpmhone/folio/internal/db"
	"github.com/jpmhone/folio/internal/like"
	"github.com/jpmhone/folio/internal/newsletter"
	"github.com/jpmhone/folio/internal/sitemap"
	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/internal/web"
	"github.com/jpmhone/folio/pkg/botdetect"
	"github.com/jpmhone/folio/pkg/cache"
	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/config"
	"github.com/jpmhone/folio/pkg/email"
	"github.com/jpmhone/folio/pkg/httpserver"
	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/pg"
	"github.com/jpmhone/folio/pkg/ratelimiter"
	"github.com/jpmhone/folio/pkg/redis"
	"github.com/jpmhone/folio/pkg/unsubtoken"
)

// serveConfig gathers every section read by the server. Nested structs are
// parsed from the same environment.
type serveConfig struct {
	HTTP       httpserver.Config
	PG         pg.Config
	Redis      redis.Config
	Email      email.Config
	Token      unsubtoken.Config
	Subscriber subscriber.Config
	Newsletter newsletter.Config
	Blog       blog.Config
	Sitemap    sitemap.Config
	Comments   comment.Config
	Web        web.Config
	ClientIP   clientip.Config
	RateLimit  ratelimiter.Config

	MigrateOnStart   bool     `env:"MIGRATE_ON_START" envDefault:"false"`
	CacheEntries     int      `env:"CACHE_MEMORY_ENTRIES" envDefault:"512"`
	ExtraBotKeywords []string `env:"BOT_USER_AGENT_KEYWORDS" envSeparator:","`
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		var cfg serveConfig
		if err := config.Load(&cfg); err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, log)
	},
}

func serve(ctx context.Context, cfg serveConfig, log *slog.Logger) error {
	signer, err := unsubtoken.NewFromConfig(cfg.Token)
	if err != nil {
		return err
	}
	sender, err := email.New(ctx, cfg.Email)
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()
	if cfg.MigrateOnStart {
		if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg.PG, log); err != nil {
			return err
		}
	}
	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	// Redis is optional; without it caches and rate limits are per instance.
	var (
		pageCache cache.Cache = cache.NewMemory(cfg.CacheEntries)
		limits    ratelimiter.Store
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer closeRedis(client, log)
		pageCache = redis.NewCache(client, cfg.Redis.KeyPrefix+"cache:")
		limits = ratelimiter.NewRedisStore(client, cfg.Redis.KeyPrefix+"rl:")
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limits = mem
	}
	bucket, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
	if err != nil {
		return err
	}

	entries, err := sitemap.LoadEntries(cfg.Sitemap.StaticFile)
	if err != nil {
		return err
	}

	subscribers := subscriber.NewService(cfg.Subscriber, subscriber.NewPGStore(pool), signer,
		subscriber.WithLogger(log.With(logger.Component("subscriber"))))
	newsletters := newsletter.NewService(cfg.Newsletter, subscribers, signer, sender,
		newsletter.WithLogger(log.With(logger.Component("newsletter"))))
	comments := comment.NewService(cfg.Comments, comment.NewPGStore(pool),
		comment.WithLogger(log.With(logger.Component("comment"))))
	likes := like.NewService(like.NewPGStore(pool),
		like.WithLogger(log.With(logger.Component("like"))))
	posts := blog.NewPGStore(pool)
	pages := blog.NewRenderer(cfg.Blog, posts, pageCache, botdetect.New(cfg.ExtraBotKeywords...),
		blog.WithLogger(log.With(logger.Component("blog"))))
	sitemaps := sitemap.NewGenerator(cfg.Sitemap, posts, pageCache,
		sitemap.WithLogger(log.With(logger.Component("sitemap"))), sitemap.WithEntries(entries))

	router := web.Router(web.RouterOptions{
		Config:       cfg.Web,
		Logger:       log,
		ClientIP:     clientip.New(cfg.ClientIP),
		RateLimit:    bucket,
		Checks:       checks,
		ProbeTimeout: cfg.HTTP.ProbeTimeout,
		Subscribers:  subscribers,
		Newsletters:  newsletters,
		Comments:     comments,
		Likes:        likes,
		BlogPages:    pages.Handle,
		Sitemap:      sitemaps.Handle,
	})

	if cfg.Web.AdminPasswordHash == "" {
		log.WarnContext(ctx, "ADMIN_PASSWORD_HASH is empty, admin routes refuse every request")
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

func closeRedis(client *goredis.Client, log *slog.Logger) {
	if err := client.Close(); err != nil {
		log.Error("failed to close redis client", logger.Error(err))
	}
}
