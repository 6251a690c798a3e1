package web

import (
	"net/http"

	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/pkg/handler"
)

type tokenRequest struct {
	Token string `path:"token" json:"-"`
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type subscriberResponse struct {
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

type unsubscribeHandlers struct {
	svc Subscribers
}

// confirm shows who the link belongs to. It never changes state.
func (h *unsubscribeHandlers) confirm(ctx handler.Context, req tokenRequest) handler.Response {
	sub, err := h.svc.Preview(ctx, req.Token)
	if err != nil {
		return handler.Error(unsubscribeError(err))
	}
	if !sub.Active {
		return handler.Templ(messagePage("Already unsubscribed", "This address no longer receives newsletters."))
	}
	return handler.Templ(confirmPage(sub.Email, ctx.Request().URL.EscapedPath()))
}

func (h *unsubscribeHandlers) unsubscribePage(ctx handler.Context, req tokenRequest) handler.Response {
	sub, err := h.svc.Unsubscribe(ctx, req.Token)
	if err != nil {
		return handler.Error(unsubscribeError(err))
	}
	return handler.Templ(unsubscribedPage(sub.Email))
}

func (h *unsubscribeHandlers) unsubscribeJSON(ctx handler.Context, req tokenRequest) handler.Response {
	sub, err := h.svc.Unsubscribe(ctx, req.Token)
	if err != nil {
		return handler.Error(unsubscribeError(err))
	}
	return handler.JSON(subscriberResponse{Email: sub.Email, Active: sub.Active})
}

func (h *unsubscribeHandlers) subscribe(ctx handler.Context, req subscribeRequest) handler.Response {
	sub, err := h.svc.Subscribe(ctx, req.Email, req.Name)
	if err != nil {
		return handler.Error(subscribeError(err))
	}
	return handler.JSON(subscriberResponse{Email: sub.Email, Active: sub.Active},
		handler.WithJSONStatus(http.StatusCreated))
}

var _ Subscribers = (*subscriber.Service)(nil)
