package web

import (
	"errors"
	"net/http"

	"github.com/jpmhone/folio/internal/comment"
	"github.com/jpmhone/folio/internal/like"
	"github.com/jpmhone/folio/internal/newsletter"
	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/pkg/handler"
	"github.com/jpmhone/folio/pkg/validator"
)

var (
	errInvalidLink   = handler.NewHTTPError(http.StatusBadRequest, "invalid_link")
	errLinkNotFound  = handler.NewHTTPError(http.StatusNotFound, "link_not_found")
	errInvalidID     = handler.NewHTTPError(http.StatusNotFound, "not_found")
	errAlreadyListed = handler.NewHTTPError(http.StatusConflict, "already_subscribed")
)

// unsubscribeError maps a subscriber.Service error to a response that never
// tells the visitor which check failed.
func unsubscribeError(err error) handler.HTTPError {
	msg := subscriber.UserMessage(err)
	switch {
	case errors.Is(err, subscriber.ErrInvalidLink):
		return errInvalidLink.WithMessage(msg)
	case errors.Is(err, subscriber.ErrSubscriberNotFound):
		return errLinkNotFound.WithMessage(msg)
	default:
		return handler.ErrServiceUnavailable.WithMessage(msg)
	}
}

// Errors carrying validator.ValidationErrors pass through untouched; the
// error handler renders their fields.

func subscribeError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, subscriber.ErrInvalidEmail):
		return handler.ErrUnprocessableEntity.WithMessage("Please enter a valid email address.")
	case errors.Is(err, subscriber.ErrAlreadySubscribed):
		return errAlreadyListed.WithMessage("This email is already subscribed.")
	default:
		return errors.Join(handler.ErrServiceUnavailable, err)
	}
}

func newsletterError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, newsletter.ErrInvalidIssue):
		return handler.ErrUnprocessableEntity
	default:
		return errors.Join(handler.ErrServiceUnavailable, err)
	}
}

func commentError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, comment.ErrPostNotFound):
		return handler.ErrNotFound.WithMessage("Post not found.")
	case errors.Is(err, comment.ErrNotFound):
		return handler.ErrNotFound.WithMessage("Comment not found.")
	case errors.Is(err, comment.ErrInvalidReaction):
		return handler.ErrUnprocessableEntity
	default:
		return errors.Join(handler.ErrServiceUnavailable, err)
	}
}

func likeError(err error) error {
	switch {
	case errors.Is(err, like.ErrPostNotFound):
		return handler.ErrNotFound.WithMessage("Post not found.")
	case errors.Is(err, like.ErrInvalidClient):
		return handler.ErrBadRequest.WithMessage("Could not determine the client address.")
	default:
		return errors.Join(handler.ErrServiceUnavailable, err)
	}
}
