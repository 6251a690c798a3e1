// Package binder fills request structs from HTTP requests for use with
// handler.Wrap.
//
//	type reactionRequest struct {
//	    CommentID string `path:"commentID"`
//	    Email     string `json:"email"`
//	    Like      bool   `json:"like"`
//	}
//
//	r.Post("/comments/{commentID}/reactions", handler.Wrap(h,
//	    handler.WithBinders[reactionRequest](binder.JSON(), binder.Path(chi.URLParam)),
//	))
//
// JSON rejects unknown fields and trailing data; Path only touches fields
// carrying a path tag, so both can target the same struct.
package binder
