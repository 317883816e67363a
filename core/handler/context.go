package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Context defines the contract for request contexts in the framework.
// Use NewContext for the default implementation.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request

	mu     sync.RWMutex
	values map[any]any
}

// NewContext returns the default Context for a request.
// Path parameters are resolved through chi's route context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &requestContext{Context: r.Context(), w: w, r: r}
}

func (c *requestContext) Request() *http.Request             { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *requestContext) Param(key string) string {
	return chi.URLParam(c.r, key)
}

func (c *requestContext) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Value checks request-scoped values before falling back to the parent context.
func (c *requestContext) Value(key any) any {
	c.mu.RLock()
	val, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return val
	}
	return c.Context.Value(key)
}
