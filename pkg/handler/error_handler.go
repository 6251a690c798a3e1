package handler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/requestid"
	"github.com/jpmhone/folio/pkg/validator"
)

// ErrorPageParams is passed to ErrorHandlerConfig.ErrorPage.
type ErrorPageParams struct {
	Message    string
	StatusCode int
	RequestID  string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders HTML error pages. When nil, errors are written in
	// the JSON envelope.
	ErrorPage func(ErrorPageParams) templ.Component
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler logs every error with request details and renders it as
// an HTML page or JSON envelope.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())

		status := http.StatusUnprocessableEntity
		message := "Validation failed"
		if !validator.IsValidationError(err) {
			httpErr := classify(err)
			status, message = httpErr.Code, httpErr.text()
		}

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if cfg.ErrorPage == nil {
			if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
				log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
			}
			return
		}

		page := cfg.ErrorPage(ErrorPageParams{Message: message, StatusCode: status, RequestID: reqID})
		if renderErr := Templ(page, WithStatus(status)).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(renderErr))
			http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
