package router

import (
	"net/http"

	"github.com/dmitrymomot/contactform/core/handler"
)

// Router registers typed handlers. It is an http.Handler.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Method(method, pattern string, h handler.HandlerFunc[C])

	// Use adds typed middleware to routes registered afterwards.
	Use(middlewares ...handler.Middleware[C])
	// UseHTTP adds net/http middleware. It must be called before any route.
	UseHTTP(middlewares ...func(http.Handler) http.Handler)
	// With returns a router sharing the routing tree with extra middleware.
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
}

// Routes lists registered routes.
type Routes interface {
	Routes() []Route
}

// Route is a registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
