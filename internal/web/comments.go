package web

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jpmhone/folio/internal/comment"
	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/handler"
)

type threadRequest struct {
	PostID string `path:"postID"`
}

type createCommentRequest struct {
	PostID      string     `path:"postID" json:"-"`
	ParentID    *uuid.UUID `json:"parent_id"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email"`
	Content     string     `json:"content"`
}

type reactionRequest struct {
	CommentID string `path:"commentID" json:"-"`
	Email     string `json:"email"`
	Like      bool   `json:"like"`
}

type commentHandlers struct {
	svc Comments
}

func (h *commentHandlers) list(ctx handler.Context, req threadRequest) handler.Response {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return handler.Error(errInvalidID)
	}
	threads, err := h.svc.Thread(ctx, postID)
	if err != nil {
		return handler.Error(commentError(err))
	}
	if threads == nil {
		threads = []*comment.Thread{}
	}
	return handler.JSON(threads)
}

func (h *commentHandlers) create(ctx handler.Context, req createCommentRequest) handler.Response {
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return handler.Error(errInvalidID)
	}
	created, err := h.svc.Post(ctx, comment.NewComment{
		PostID:      postID,
		ParentID:    req.ParentID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Content:     req.Content,
	})
	if err != nil {
		return handler.Error(commentError(err))
	}
	return handler.JSON(created, handler.WithJSONStatus(http.StatusCreated))
}

// react identifies the reader by the submitted email and the client address.
func (h *commentHandlers) react(ctx handler.Context, req reactionRequest) handler.Response {
	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		return handler.Error(errInvalidID)
	}
	counts, err := h.svc.React(ctx, comment.Reaction{
		CommentID: commentID,
		Email:     req.Email,
		IP:        clientip.FromContext(ctx),
		Like:      req.Like,
	})
	if err != nil {
		return handler.Error(commentError(err))
	}
	return handler.JSON(counts)
}

var _ Comments = (*comment.Service)(nil)
