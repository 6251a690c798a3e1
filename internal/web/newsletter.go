package web

import (
	"github.com/jpmhone/folio/internal/newsletter"
	"github.com/jpmhone/folio/pkg/handler"
)

type newsletterHandlers struct {
	svc Newsletters
}

func (h *newsletterHandlers) send(ctx handler.Context, issue newsletter.Issue) handler.Response {
	report, err := h.svc.Send(ctx, issue)
	if err != nil {
		return handler.Error(newsletterError(err))
	}
	return handler.JSON(report)
}

var _ Newsletters = (*newsletter.Service)(nil)
