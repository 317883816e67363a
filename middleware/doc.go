// Package middleware holds HTTP middleware shared by the application routes.
//
// RateLimit is a handler.Middleware keyed by the peer address by default, or by
// the proxy-reported client IP when TrustProxyHeaders is set:
//
//	limiter, _ := ratelimiter.NewTokenBucket(ratelimiter.NewMemoryStore(), cfg)
//	submit := handler.Wrap(handler.NewContext, h.submit, response.ErrorHandler[handler.Context],
//		middleware.RateLimit[handler.Context](middleware.RateLimitConfig{Limiter: limiter, SetHeaders: true}),
//	)
//
// SecurityHeaders is plain net/http middleware for chi's Use.
package middleware
