// Package components provides email-safe HTML building blocks.
//
// Components are plain templ.Component values, so they compose with
// components generated from .templ files:
//
//	body := components.Join(
//		components.Header("New submission", "Faculty: Jane Doe"),
//		components.Table([]string{"University", "Contact"}, rows),
//		components.Footer("Sent automatically"),
//	)
//	html, err := templates.Render(templ.WithChildren(ctx, body), components.Layout("New submission"))
//
// Available components:
//   - Layout(title): document shell; renders its children in a centered container
//   - Header(title, subtitle): main heading with optional subtitle
//   - Text(content): paragraph
//   - Table(headers, rows): bordered data table
//   - Footer(content): muted footer line
//   - Join(items...): renders components in sequence
//
// Every text argument is HTML-escaped.
package components
