package like

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidClient = errors.New("like requires a client address")
	ErrUnavailable   = errors.New("like store unavailable")
)

// Status is a post's like count together with whether the asking client
// is among the likers.
type Status struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// Store persists post likes. Unknown or unpublished posts yield
// ErrPostNotFound.
type Store interface {
	// Toggle adds the like of ip when absent and removes it otherwise.
	Toggle(ctx context.Context, postID uuid.UUID, ip string) (Status, error)
	Status(ctx context.Context, postID uuid.UUID, ip string) (Status, error)
}
