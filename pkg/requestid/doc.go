// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is short and made
// of [A-Za-z0-9_-], and otherwise generates a UUIDv7. The ID is echoed in the
// response header and stored in the request context, where LoggerExtractor
// picks it up for structured logs:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
