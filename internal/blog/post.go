package blog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("post not found")

type Post struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Store reads published posts. FindPublishedBySlug returns ErrNotFound for
// unknown and unpublished slugs alike.
type Store interface {
	FindPublishedBySlug(ctx context.Context, slug string) (Post, error)
	ListPublished(ctx context.Context) ([]Post, error)
}

type Config struct {
	SiteURL  string        `env:"SITE_URL" envDefault:"http://localhost:5173"`
	Author   string        `env:"SITE_AUTHOR" envDefault:"Joana Promise Mhone"`
	CacheTTL time.Duration `env:"BLOG_SSR_CACHE_TTL" envDefault:"10m"`
}
