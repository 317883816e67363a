// Package router registers typed handler.HandlerFunc values on a chi routing
// tree. Each route is wrapped with handler.Wrap, so handlers return
// handler.Response and errors go to one error handler (response.ErrorHandler
// by default).
//
//	r := router.New[handler.Context]()
//	r.UseHTTP(middleware.Recoverer)
//	r.Get("/", page)
//	r.With(rateLimit).Post("/submit", submit)
//
// Typed middleware added with Use applies to routes registered after the
// call; With and Group scope middleware to a subset of routes.
package router
