package web

import (
	"github.com/google/uuid"

	"github.com/jpmhone/folio/internal/like"
	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/handler"
)

type postLikesRequest struct {
	PostID string `path:"postID"`
}

type likeHandlers struct {
	svc Likes
}

func (h *likeHandlers) status(ctx handler.Context, req postLikesRequest) handler.Response {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return handler.Error(errInvalidID)
	}
	st, err := h.svc.Status(ctx, postID, clientip.FromContext(ctx))
	if err != nil {
		return handler.Error(likeError(err))
	}
	return handler.JSON(st)
}

// toggle keys the like on the resolved client address.
func (h *likeHandlers) toggle(ctx handler.Context, req postLikesRequest) handler.Response {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return handler.Error(errInvalidID)
	}
	st, err := h.svc.Toggle(ctx, postID, clientip.FromContext(ctx))
	if err != nil {
		return handler.Error(likeError(err))
	}
	return handler.JSON(st)
}

var _ Likes = (*like.Service)(nil)
