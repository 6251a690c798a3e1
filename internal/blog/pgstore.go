package blog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jpmhone/folio/pkg/pg"
)

const postColumns = `id, slug, title, content, COALESCE(excerpt, ''), COALESCE(featured_image, ''), published, created_at, updated_at`

type PGStore struct {
	db pg.DB
}

func NewPGStore(db pg.DB) *PGStore {
	return &PGStore{db: db}
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &p.Excerpt, &p.FeaturedImage, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGStore) FindPublishedBySlug(ctx context.Context, slug string) (Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts
		WHERE slug = $1 AND published
	`
	p, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return p, nil
}

func (r *PGStore) ListPublished(ctx context.Context) ([]Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM blog_posts
		WHERE published
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan posts: %w", err)
	}
	return posts, nil
}
