package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/logger"
	"github.com/dmitrymomot/contactform/core/response"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// NewCheck is a shorthand for building a Check.
func NewCheck(name string, fn func(context.Context) error) Check {
	return Check{Name: name, Fn: fn}
}

// Readiness runs every check in order and answers 503 on the first failure.
// Nil check functions are skipped so optional dependencies can be passed unconditionally.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, c := range checks {
			if c.Fn == nil {
				continue
			}
			start := time.Now()
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Elapsed(start),
					logger.Error(err),
				)
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
