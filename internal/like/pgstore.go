package like

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

// Toggle locks the post row so concurrent toggles from one address
// serialize, then deletes or inserts the like.
func (r *PGStore) Toggle(ctx context.Context, postID uuid.UUID, ip string) (Status, error) {
	var st Status
	err := pg.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockPost(ctx, tx, postID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_ip = $2`, postID, ip)
		if err != nil {
			return fmt.Errorf("failed to remove like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx,
				`INSERT INTO post_likes (post_id, user_ip) VALUES ($1, $2)`, postID, ip); err != nil {
				return fmt.Errorf("failed to add like: %w", err)
			}
		}

		st, err = status(ctx, tx, postID, ip)
		return err
	})
	return st, err
}

func (r *PGStore) Status(ctx context.Context, postID uuid.UUID, ip string) (Status, error) {
	var found uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM blog_posts WHERE id = $1 AND published`, postID).Scan(&found)
	switch {
	case pg.IsNotFoundError(err):
		return Status{}, ErrPostNotFound
	case err != nil:
		return Status{}, fmt.Errorf("failed to get post: %w", err)
	}
	return status(ctx, r.db, postID, ip)
}

func lockPost(ctx context.Context, tx pgx.Tx, postID uuid.UUID) error {
	var locked uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM blog_posts WHERE id = $1 AND published FOR UPDATE`, postID).Scan(&locked)
	switch {
	case pg.IsNotFoundError(err):
		return ErrPostNotFound
	case err != nil:
		return fmt.Errorf("failed to lock post: %w", err)
	}
	return nil
}

func status(ctx context.Context, q pg.DB, postID uuid.UUID, ip string) (Status, error) {
	var st Status
	err := q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(BOOL_OR(user_ip = $2), FALSE)
		FROM post_likes
		WHERE post_id = $1`, postID, ip).Scan(&st.Count, &st.Liked)
	if err != nil {
		return Status{}, fmt.Errorf("failed to count likes: %w", err)
	}
	return st, nil
}
