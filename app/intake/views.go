package intake

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Branding is the static text around the form.
type Branding struct {
	Title    string `env:"BRAND_TITLE" envDefault:"University Contact Information Form"`
	Subtitle string `env:"BRAND_SUBTITLE" envDefault:"Share the university contacts you work with."`
	Footer   string `env:"BRAND_FOOTER" envDefault:"University Contact Intake"`
}

// PageData is everything the form views need.
type PageData struct {
	Branding   Branding
	Draft      Draft
	Validation Validation
	Outcome    *Outcome
}

func newPageData(b Branding, d Draft, outcome *Outcome) PageData {
	d.Normalize()
	return PageData{Branding: b, Draft: d, Validation: d.Validate(), Outcome: outcome}
}

const htmxScript = `<script src="https://unpkg.com/htmx.org@2.0.4"></script>`

const pageStyle = `<style>
body{margin:0;font-family:Arial,Helvetica,sans-serif;background:#f4f5f7;color:#1f2933}
header{background:#00498f;color:#fff;padding:24px 16px;text-align:center}
header h1{margin:0 0 4px;font-size:26px}
main{max-width:760px;margin:24px auto 80px;background:#fff;border-radius:6px;padding:24px}
label{display:block;font-weight:600;margin:12px 0 4px}
input{width:100%;box-sizing:border-box;padding:8px;border:1px solid #cbd2d9;border-radius:4px}
fieldset{border:1px solid #cbd2d9;border-radius:6px;margin:16px 0;padding:8px 16px 16px}
legend{font-weight:700}
#intake-form{display:flex;flex-direction:column}
#intake-form .add-row{order:1}#form-status{order:2}
.actions{display:flex;justify-content:space-between;align-items:center;margin:16px 0}
button{padding:8px 16px;border:0;border-radius:4px;background:#00498f;color:#fff;cursor:pointer}
button[disabled]{background:#9aa5b1;cursor:not-allowed}
.msg{padding:10px 12px;border-radius:4px;margin:8px 0}
.msg-info{background:#e6f0fa}.msg-success{background:#e3f9e5}.msg-warning{background:#fffbea}.msg-error{background:#ffe3e3}
footer{position:fixed;bottom:0;left:0;right:0;background:rgba(0,73,143,.8);color:#fff;text-align:center;padding:8px 0;font-weight:600}
</style>`

// Page renders the full document.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := data.Branding
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(b.Title) + `</title>` + pageStyle + htmxScript + `</head><body>` +
			`<header><h1>` + templ.EscapeString(b.Title) + `</h1>`
		if b.Subtitle != "" {
			head += `<p>` + templ.EscapeString(b.Subtitle) + `</p>`
		}
		head += `</header><main>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := Form(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><footer>`+templ.EscapeString(b.Footer)+`</footer></body></html>`)
		return err
	})
}

// Form renders the form element. It is the swap target of add-row and submit.
func Form(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<form id="intake-form" method="post" action="/submit" hx-post="/validate" hx-trigger="input delay:300ms" hx-target="#form-status" hx-swap="outerHTML">`)
		sb.WriteString(`<label for="faculty_name">Faculty Name</label>`)
		sb.WriteString(input("faculty_name", "faculty_name", data.Draft.Faculty, "Enter your name"))

		for i, row := range data.Draft.Rows {
			n := i + 1
			fmt.Fprintf(&sb, `<fieldset><legend>University %d</legend>`, n)
			sb.WriteString(labeled(fmt.Sprintf("University Name %d", n), "university_name", n, row.University, "e.g., University of Memphis"))
			sb.WriteString(labeled(fmt.Sprintf("Contact Name %d", n), "contact_name", n, row.ContactName, "Enter the contact name"))
			sb.WriteString(labeled(fmt.Sprintf("Designation %d", n), "designation", n, row.Designation, "e.g., Associate Professor"))
			sb.WriteString(labeled(fmt.Sprintf("Email Address %d", n), "email", n, row.Email, "example@university.edu"))
			sb.WriteString(`</fieldset>`)
		}

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}

		// Submit comes first in document order so Enter submits the form;
		// CSS order shows the add-row control above it.
		if err := Status(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<div class="actions add-row"><small>Add more university contacts if applicable.</small>`+
			`<button type="submit" formaction="/rows" formnovalidate hx-post="/rows" hx-target="#intake-form" hx-swap="outerHTML">Add university contact</button></div></form>`)
		return err
	})
}

// Status renders the live part of the form: warnings, the submit control,
// the hint and the outcome of the last submit.
func Status(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<div id="form-status">`)

		for _, warning := range data.Validation.Warnings {
			sb.WriteString(message("warning", warning))
		}

		sb.WriteString(`<div class="actions"><button type="submit" id="submit" hx-post="/submit" hx-target="#intake-form" hx-swap="outerHTML"`)
		if !data.Validation.CanSubmit {
			sb.WriteString(` disabled`)
		}
		sb.WriteString(`>Submit</button></div>`)

		if !data.Validation.CanSubmit {
			sb.WriteString(message("info", "Enter Faculty Name and complete all four fields for at least one university to enable Submit."))
		}
		if o := data.Outcome; o != nil && o.Message != "" {
			sb.WriteString(message(o.Level(), o.Message))
		}

		sb.WriteString(`</div>`)
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

func labeled(label, name string, n int, value, placeholder string) string {
	id := fmt.Sprintf("%s_%d", name, n)
	return `<label for="` + id + `">` + templ.EscapeString(label) + `</label>` + input(id, name, value, placeholder)
}

func input(id, name, value, placeholder string) string {
	return `<input type="text" id="` + templ.EscapeString(id) + `" name="` + templ.EscapeString(name) +
		`" value="` + templ.EscapeString(value) + `" placeholder="` + templ.EscapeString(placeholder) + `">`
}

func message(level, text string) string {
	return `<div class="msg msg-` + level + `" role="status">` + templ.EscapeString(text) + `</div>`
}
