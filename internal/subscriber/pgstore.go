package subscriber

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jpmhone/folio/pkg/pg"
)

const subscriberColumns = `id, email, name, active, subscribed_at, unsubscribed_at`

// PGStore is the Postgres implementation of Store.
type PGStore struct {
	db pg.DB
}

func NewPGStore(db pg.DB) *PGStore {
	return &PGStore{db: db}
}

func scanSubscriber(row pgx.Row) (Subscriber, error) {
	var s Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Name, &s.Active, &s.SubscribedAt, &s.UnsubscribedAt)
	return s, err
}

func (r *PGStore) one(ctx context.Context, op, query string, args ...any) (Subscriber, error) {
	s, err := scanSubscriber(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Subscriber{}, ErrNotFound
		}
		return Subscriber{}, fmt.Errorf("failed to %s subscriber: %w", op, err)
	}
	return s, nil
}

func (r *PGStore) FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE id = $1 AND email = $2
	`
	return r.one(ctx, "get", query, id, email)
}

func (r *PGStore) FindByID(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE id = $1
	`
	return r.one(ctx, "get", query, id)
}

func (r *PGStore) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE email = $1
	`
	return r.one(ctx, "get", query, email)
}

func (r *PGStore) Create(ctx context.Context, s Subscriber) (Subscriber, error) {
	query := `
		INSERT INTO subscribers (id, email, name, active, subscribed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + subscriberColumns
	created, err := scanSubscriber(r.db.QueryRow(ctx, query, s.ID, s.Email, s.Name, s.Active, s.SubscribedAt))
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return Subscriber{}, ErrDuplicateEmail
		}
		return Subscriber{}, fmt.Errorf("failed to insert subscriber: %w", err)
	}
	return created, nil
}

func (r *PGStore) Reactivate(ctx context.Context, id uuid.UUID, name string, at time.Time) (Subscriber, error) {
	query := `
		UPDATE subscribers
		SET active = TRUE, name = $2, subscribed_at = $3, unsubscribed_at = NULL
		WHERE id = $1
		RETURNING ` + subscriberColumns
	return r.one(ctx, "reactivate", query, id, name, at)
}

// Deactivate marks the record inactive. The first unsubscribed_at wins when
// two requests race.
func (r *PGStore) Deactivate(ctx context.Context, id uuid.UUID, d Deactivation) (Subscriber, error) {
	query := `
		UPDATE subscribers
		SET active = FALSE,
			unsubscribed_at = COALESCE(unsubscribed_at, $2),
			email = COALESCE(NULLIF($3, ''), email),
			name = COALESCE(NULLIF($4, ''), name)
		WHERE id = $1
		RETURNING ` + subscriberColumns
	return r.one(ctx, "deactivate", query, id, d.At, d.Email, d.Name)
}

func (r *PGStore) ListActive(ctx context.Context) ([]Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM subscribers
		WHERE active
		ORDER BY subscribed_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Subscriber, error) {
		return scanSubscriber(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscribers: %w", err)
	}
	return subs, nil
}
