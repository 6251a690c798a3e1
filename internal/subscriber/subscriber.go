package subscriber

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Active         bool       `json:"active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

// Deactivation describes how a record is retired. Empty Email and Name
// leave the stored values untouched.
type Deactivation struct {
	At    time.Time
	Email string
	Name  string
}

// Store persists subscribers. Lookups that match nothing return ErrNotFound;
// Create returns ErrDuplicateEmail when the address is already stored.
type Store interface {
	FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (Subscriber, error)
	FindByID(ctx context.Context, id uuid.UUID) (Subscriber, error)
	FindByEmail(ctx context.Context, email string) (Subscriber, error)
	Create(ctx context.Context, s Subscriber) (Subscriber, error)
	Reactivate(ctx context.Context, id uuid.UUID, name string, at time.Time) (Subscriber, error)
	Deactivate(ctx context.Context, id uuid.UUID, d Deactivation) (Subscriber, error)
	ListActive(ctx context.Context) ([]Subscriber, error)
}

type Config struct {
	// AnonymizeOnUnsubscribe replaces the address and name of an
	// unsubscribed record so no personal data is retained.
	AnonymizeOnUnsubscribe bool `env:"SUBSCRIBER_ANONYMIZE_ON_UNSUBSCRIBE" envDefault:"false"`
}

const (
	anonymizedName        = "Unsubscribed User"
	anonymizedEmailDomain = "deleted.local"
)

func isAnonymized(address string) bool {
	return strings.HasSuffix(address, "@"+anonymizedEmailDomain)
}
