package middleware

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/response"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Limiter is required.
	Limiter ratelimiter.RateLimiter
	// KeyExtractor defaults to the peer address, or to the proxy-reported
	// client IP when TrustProxyHeaders is set.
	KeyExtractor      func(ctx handler.Context) string
	TrustProxyHeaders bool
	// ErrorHandler defaults to 429 Too Many Requests.
	ErrorHandler func(ctx handler.Context, result ratelimiter.Result) handler.Response
	SetHeaders   bool
}

// RateLimit rejects requests once the caller's bucket is empty.
// Panics if no limiter is provided.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		ip := clientip.RemoteIP
		if cfg.TrustProxyHeaders {
			ip = clientip.GetIP
		}
		cfg.KeyExtractor = func(ctx handler.Context) string {
			return ip(ctx.Request())
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, result ratelimiter.Result) handler.Response {
			return response.Error(response.ErrTooManyRequests)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			var resp handler.Response
			if result.Allowed() {
				resp = next(ctx)
			} else {
				resp = cfg.ErrorHandler(ctx, result)
			}

			if cfg.SetHeaders {
				return withRateLimitHeaders(resp, result)
			}
			return resp
		}
	}
}

// withRateLimitHeaders adds X-RateLimit-* and, when blocked, Retry-After.
func withRateLimitHeaders(resp handler.Response, result ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if retry := result.RetryAfter(); retry > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
		}

		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}
		return resp(w, r)
	}
}
