package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// File describes a stored object.
type File struct {
	Path        string // path relative to the storage root, slash separated
	Size        int64
	ContentType string
	URL         string
}

// Storage publishes generated artifacts (sitemap.xml and friends).
type Storage interface {
	// Put writes content to path, replacing any existing object.
	Put(ctx context.Context, path string, content io.Reader, contentType string) (*File, error)
	// Delete removes a single object.
	Delete(ctx context.Context, path string) error
	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for path.
	URL(path string) string
}

// Backends.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config selects and configures the storage backend.
type Config struct {
	Backend  string `env:"STORAGE_BACKEND" envDefault:"local"` // local | s3
	LocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"./public"`
	BaseURL  string `env:"STORAGE_BASE_URL"` // public URL prefix; derived for S3 when empty

	S3Bucket         string `env:"STORAGE_S3_BUCKET"`
	S3Region         string `env:"STORAGE_S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"STORAGE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"STORAGE_S3_ENDPOINT"` // S3-compatible services
	S3ForcePathStyle bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// New builds the backend named by cfg.Backend.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	case BackendS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, cfg.Backend)
	}
}

// cleanKey normalises an object key and rejects traversal.
func cleanKey(p string) (string, error) {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return path.Clean(p), nil
}

func joinURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}
