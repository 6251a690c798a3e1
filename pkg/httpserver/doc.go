// Package httpserver runs an http.Handler with graceful shutdown and
// provides liveness and readiness handlers.
//
// Run binds the listener first, so start hooks fire only once the address
// is actually accepting connections, then serves until the context is
// cancelled, SIGINT/SIGTERM arrives or Shutdown is called. Shutdown waits up
// to the configured timeout for in-flight requests.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ProbeTimeout,
//		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
//
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Listen and serve failures are wrapped with ErrStart; shutdown failures
// with ErrShutdown.
package httpserver
