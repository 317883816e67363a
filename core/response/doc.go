// Package response provides handler.Response constructors for HTML, templ
// components, plain text, redirects and htmx-aware replies.
//
// Responses are values; nothing is written until the adapter runs them:
//
//	func page(ctx handler.Context) handler.Response {
//		if !response.IsHTMXRequest(ctx.Request()) {
//			return response.Templ(views.Page(model))
//		}
//		return response.WithHTMX(
//			response.Templ(views.Fragment(model)),
//			response.TriggerEvent("saved", nil),
//		)
//	}
//
// Redirect helpers answer htmx requests with HX-Location and 200 OK so the
// client performs the navigation instead of following a 3xx inside XHR.
//
// ErrorHandler maps errors to status codes through HTTPError or any error
// implementing StatusCode() int; everything else becomes 500.
package response
