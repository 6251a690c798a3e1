// Package handler provides typed HTTP handlers.
//
// A HandlerFunc receives a Context and a request struct filled by binders,
// and returns a Response. Wrap adapts it to http.HandlerFunc:
//
//	type subscribeRequest struct {
//	    Email string `json:"email"`
//	    Name  string `json:"name"`
//	}
//
//	func (h *API) subscribe(ctx handler.Context, req subscribeRequest) handler.Response {
//	    sub, err := h.subscribers.Subscribe(ctx, req.Email, req.Name)
//	    if err != nil {
//	        return handler.JSONError(err)
//	    }
//	    return handler.JSON(sub, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/api/subscribers", handler.Wrap(h.subscribe,
//	    handler.WithBinders[subscribeRequest](binder.JSON()),
//	    handler.WithErrorHandler[subscribeRequest](apiErrors),
//	))
//
// Responses cover JSON envelopes, templ components, pre-rendered HTML,
// redirects and empty bodies. Errors returned by binders or Render go to
// the ErrorHandler; NewErrorHandler logs them and renders either a JSON
// envelope or an HTML error page.
//
// HTTPError carries a status code and a stable key. validator.ValidationErrors
// anywhere in an error chain maps to 422 with per-field details.
package handler
