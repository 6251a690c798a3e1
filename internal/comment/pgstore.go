package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jpmhone/folio/pkg/pg"
)

// TxDB is a pool that can also start transactions; *pgxpool.Pool fits.
type TxDB interface {
	pg.DB
	pg.TxBeginner
}

type PGStore struct {
	db TxDB
}

func NewPGStore(db TxDB) *PGStore {
	return &PGStore{db: db}
}

const commentColumns = `id, post_id, parent_id, author_name, author_email, content, approved, likes_count, dislikes_count, created_at`

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.PostID, &c.ParentID, &c.AuthorName, &c.AuthorEmail, &c.Content,
		&c.Approved, &c.Likes, &c.Dislikes, &c.CreatedAt)
	return c, err
}

func (r *PGStore) ListApproved(ctx context.Context, postID uuid.UUID) ([]Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE post_id = $1 AND approved
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Comment, error) {
		return scanComment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}
	return comments, nil
}

func (r *PGStore) Create(ctx context.Context, c Comment) (Comment, error) {
	query := `
		INSERT INTO comments (id, post_id, parent_id, author_name, author_email, content, approved, created_at)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::text, $6::text, $7::boolean, $8::timestamptz
		WHERE $3::uuid IS NULL OR EXISTS (SELECT 1 FROM comments WHERE id = $3::uuid AND post_id = $2::uuid)
		RETURNING ` + commentColumns
	created, err := scanComment(r.db.QueryRow(ctx, query,
		c.ID, c.PostID, c.ParentID, c.AuthorName, c.AuthorEmail, c.Content, c.Approved, c.CreatedAt))
	switch {
	case pg.IsNotFoundError(err), pg.IsForeignKeyViolationError(err):
		return Comment{}, ErrPostNotFound
	case err != nil:
		return Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return created, nil
}

// React locks the comment row, resolves the reader's previous reaction and
// adjusts both tables in one transaction.
func (r *PGStore) React(ctx context.Context, re Reaction) (Counts, error) {
	var counts Counts
	err := pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM comments WHERE id = $1 AND approved FOR UPDATE`, re.CommentID).Scan(&locked)
		if err != nil {
			if pg.IsNotFoundError(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock comment: %w", err)
		}

		var prev *bool
		err = tx.QueryRow(ctx,
			`SELECT is_like FROM comment_likes WHERE comment_id = $1 AND user_email = $2 AND user_ip = $3`,
			re.CommentID, re.Email, re.IP).Scan(&prev)
		if err != nil && !pg.IsNotFoundError(err) {
			return fmt.Errorf("failed to read reaction: %w", err)
		}

		next, delta := applyReaction(prev, re.Like)
		if next == nil {
			_, err = tx.Exec(ctx,
				`DELETE FROM comment_likes WHERE comment_id = $1 AND user_email = $2 AND user_ip = $3`,
				re.CommentID, re.Email, re.IP)
		} else {
			_, err = tx.Exec(ctx, `
				INSERT INTO comment_likes (comment_id, user_email, user_ip, is_like)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (comment_id, user_email, user_ip) DO UPDATE SET is_like = EXCLUDED.is_like`,
				re.CommentID, re.Email, re.IP, *next)
		}
		if err != nil {
			return fmt.Errorf("failed to write reaction: %w", err)
		}

		err = tx.QueryRow(ctx, `
			UPDATE comments
			SET likes_count = GREATEST(likes_count + $2, 0),
				dislikes_count = GREATEST(dislikes_count + $3, 0)
			WHERE id = $1
			RETURNING likes_count, dislikes_count`,
			re.CommentID, delta.Likes, delta.Dislikes).Scan(&counts.Likes, &counts.Dislikes)
		if err != nil {
			return fmt.Errorf("failed to update counts: %w", err)
		}
		return nil
	})
	return counts, err
}
