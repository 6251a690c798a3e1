package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/jpmhone/folio/pkg/clientip"
	"github.com/jpmhone/folio/pkg/handler"
	"github.com/jpmhone/folio/pkg/logger"
	"github.com/jpmhone/folio/pkg/ratelimiter"
)

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status_code", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

// rateLimit keys buckets by client address. A nil bucket disables limiting.
func rateLimit(b *ratelimiter.Bucket, log *slog.Logger) func(http.Handler) http.Handler {
	if b == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(b, func(r *http.Request) string {
		return clientip.FromContext(r.Context())
	}, log)
}

// adminAuth guards admin routes with HTTP basic auth against a bcrypt hash.
// Without a configured hash every request is refused.
func adminAuth(cfg Config, log *slog.Logger) func(http.Handler) http.Handler {
	hash := []byte(cfg.AdminPasswordHash)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if ok && len(hash) > 0 &&
				subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUser)) == 1 &&
				bcrypt.CompareHashAndPassword(hash, []byte(pass)) == nil {
				next.ServeHTTP(w, r)
				return
			}

			if ok {
				log.WarnContext(r.Context(), "admin authentication failed", slog.String("path", r.URL.Path))
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="folio admin", charset="UTF-8"`)
			_ = handler.JSONError(handler.ErrUnauthorized).Render(w, r)
		})
	}
}
