package subscriber

import "errors"

var (
	// Store level.
	ErrNotFound       = errors.New("subscriber not found")
	ErrDuplicateEmail = errors.New("subscriber email already exists")

	// Service level.
	ErrInvalidLink        = errors.New("unsubscribe link is invalid or has expired")
	ErrSubscriberNotFound = errors.New("subscriber no longer exists for this link")
	ErrUnavailable        = errors.New("subscriber store unavailable")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrAlreadySubscribed  = errors.New("email is already subscribed")
)

// Messages shown to the person following an unsubscribe link. They never
// reveal which check failed.
const (
	MessageInvalidLink = "This unsubscribe link is invalid or has expired."
	MessageNotFound    = "This link is no longer valid."
	MessageUnavailable = "Something went wrong, please try again later."
)

// UserMessage maps an Unsubscribe or Preview error to its display text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidLink):
		return MessageInvalidLink
	case errors.Is(err, ErrSubscriberNotFound):
		return MessageNotFound
	default:
		return MessageUnavailable
	}
}
