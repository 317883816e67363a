package router

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/contactform/core/handler"
	"github.com/dmitrymomot/contactform/core/response"
)

// mux adapts typed handlers onto a chi routing tree.
type mux[C handler.Context] struct {
	tree         chi.Router
	newContext   func(http.ResponseWriter, *http.Request) C
	errorHandler handler.ErrorHandler[C]
	middlewares  []handler.Middleware[C]
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree:         chi.NewRouter(),
		errorHandler: response.ErrorHandler[C],
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		f, ok := any(handler.NewContext).(func(http.ResponseWriter, *http.Request) C)
		if !ok {
			panic("router: context factory is required for custom context types")
		}
		m.newContext = f
	}
	return m
}

func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.tree.ServeHTTP(w, r)
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Method(method, pattern string, h handler.HandlerFunc[C]) {
	m.tree.Method(method, pattern, handler.Wrap(m.newContext, h, m.errorHandler, m.middlewares...))
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) UseHTTP(middlewares ...func(http.Handler) http.Handler) {
	m.tree.Use(middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	sub := &mux[C]{
		tree:         m.tree.With(),
		newContext:   m.newContext,
		errorHandler: m.errorHandler,
		middlewares:  slices.Concat(m.middlewares, middlewares),
	}
	return sub
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	sub := m.With()
	if fn != nil {
		fn(sub)
	}
	return sub
}

func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.tree, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	})
	slices.SortFunc(routes, func(a, b Route) int {
		if c := strings.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}
		return strings.Compare(a.Method, b.Method)
	})
	return routes
}
