// Package handler provides types for HTTP request processing with type-safe
// context handling and middleware support.
//
// A handler receives a Context and returns a Response. The Response is a plain
// function that writes headers, status and body, so it can be composed,
// decorated and tested without a server:
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//
// Wrap turns a HandlerFunc into an http.HandlerFunc so it can be registered on
// a chi router (or any net/http mux):
//
//	r := chi.NewRouter()
//	r.Get("/", handler.WrapDefault(func(ctx handler.Context) handler.Response {
//		return response.String("ok")
//	}, response.ErrorHandler[handler.Context]))
//
// Middlewares wrap handlers at the HandlerFunc level and are applied in the
// order given, the first one running outermost.
package handler
