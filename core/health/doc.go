// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", handler.Wrap(handler.NewContext, health.Liveness[handler.Context], response.ErrorHandler))
//	r.Get("/health/ready", handler.Wrap(handler.NewContext, health.Readiness[handler.Context](log,
//		health.NewCheck("redis", redis.Healthcheck(client)),
//	), response.ErrorHandler))
//
// Liveness always answers "ALIVE". Readiness answers "READY" when all checks
// pass and 503 otherwise; the failing check is logged, never exposed.
package health
