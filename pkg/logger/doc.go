// Package logger builds the process-wide *slog.Logger.
//
// New assembles a text or JSON slog handler from functional options and wraps
// it with a decorator that pulls request-scoped values (request id, client ip)
// out of the context on every record. Attribute helpers in attr.go keep key
// names consistent across packages:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "folio"),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	log.InfoContext(ctx, "subscriber deactivated",
//	    logger.Component("subscriber"),
//	    logger.SubscriberID(id),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
