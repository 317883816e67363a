// Package templates renders templ components into HTML email bodies.
//
// Render writes a component into a string suitable for
// email.SendEmailParams.BodyHTML. Layout components read their content from
// templ children, so pass the body through the context:
//
//	body := components.Join(
//		components.Header("University Contact Information", "Submitted by "+faculty),
//		components.Table([]string{"University Name", "Contact Name"}, rows),
//		components.Footer("Sent automatically."),
//	)
//	html, err := templates.Render(templ.WithChildren(ctx, body), components.Layout(subject))
//
// The building blocks live in the components subpackage.
package templates
