package comment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("comment not found")
	ErrPostNotFound    = errors.New("post or parent comment not found")
	ErrInvalidReaction = errors.New("reaction requires a valid email and client address")
	ErrUnavailable     = errors.New("comment store unavailable")
)

// Comment is a reader comment on a post. Replies point at their parent.
type Comment struct {
	ID          uuid.UUID  `json:"id"`
	PostID      uuid.UUID  `json:"post_id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"-"`
	Content     string     `json:"content"`
	Approved    bool       `json:"approved"`
	Likes       int        `json:"likes_count"`
	Dislikes    int        `json:"dislikes_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Thread is a comment with its nested replies.
type Thread struct {
	Comment
	Replies []*Thread `json:"replies"`
}

// Reaction is one reader's like or dislike. A reader is identified by the
// email they entered together with their client address.
type Reaction struct {
	CommentID uuid.UUID
	Email     string
	IP        string
	Like      bool
}

type Counts struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Store persists comments and reactions.
type Store interface {
	// ListApproved returns every approved comment of a post, replies included.
	ListApproved(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	// Create returns ErrPostNotFound when the post or parent does not exist.
	Create(ctx context.Context, c Comment) (Comment, error)
	// React applies r atomically and returns the comment's new counts.
	// Unknown or unapproved comments yield ErrNotFound.
	React(ctx context.Context, r Reaction) (Counts, error)
}

// Config bounds submitted comments.
type Config struct {
	RequireApproval  bool `env:"COMMENTS_REQUIRE_APPROVAL" envDefault:"true"`
	MaxContentLength int  `env:"COMMENTS_MAX_LENGTH" envDefault:"5000"`
}

const maxNameLength = 100
