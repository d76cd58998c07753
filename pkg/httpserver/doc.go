// Package httpserver runs an http.Handler with graceful shutdown and exposes
// liveness and readiness probes.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run blocks until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// listener fails. Shutdown waits at most ShutdownTimeout for in-flight
// requests.
//
// Readiness takes named checks, typically pg.Healthcheck and
// redis.Healthcheck:
//
//	r.Get("/health/live", httpserver.Liveness())
//	r.Get("/health/ready", httpserver.Readiness(log, time.Second,
//	    httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//	))
package httpserver
