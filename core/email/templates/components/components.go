package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout is the base HTML document for emails. Children are rendered inside a
// centered 600px container.
func Layout(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`+
			templ.EscapeString(title)+
			`</title></head><body style="margin:0;padding:0;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;color:#1f2933;">`+
			`<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr><td align="center" style="padding:24px;">`+
			`<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:6px;padding:24px;"><tr><td>`); err != nil {
			return err
		}
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</td></tr></table></td></tr></table></body></html>`)
		return err
	})
}

// Header renders the main heading with an optional subtitle.
func Header(title, subtitle string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := `<h1 style="font-size:22px;margin:0 0 8px;">` + templ.EscapeString(title) + `</h1>`
		if subtitle != "" {
			out += `<p style="margin:0 0 16px;color:#52606d;">` + templ.EscapeString(subtitle) + `</p>`
		}
		_, err := io.WriteString(w, out)
		return err
	})
}

// Text renders a paragraph with escaped content.
func Text(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p style="margin:0 0 16px;line-height:1.5;">`+templ.EscapeString(content)+`</p>`)
		return err
	})
}

// Table renders a bordered data table. Cells are escaped; rows shorter than
// the header are padded with empty cells.
func Table(headers []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		const cell = `style="border:1px solid #cbd2d9;padding:6px 8px;text-align:left;"`

		out := `<table cellpadding="0" cellspacing="0" style="border-collapse:collapse;width:100%;margin:0 0 16px;"><thead><tr>`
		for _, h := range headers {
			out += `<th ` + cell + `>` + templ.EscapeString(h) + `</th>`
		}
		out += `</tr></thead><tbody>`
		for _, row := range rows {
			out += `<tr>`
			for i := range headers {
				var v string
				if i < len(row) {
					v = row[i]
				}
				out += `<td ` + cell + `>` + templ.EscapeString(v) + `</td>`
			}
			out += `</tr>`
		}
		out += `</tbody></table>`

		_, err := io.WriteString(w, out)
		return err
	})
}

// Footer renders muted footer text.
func Footer(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p style="margin:24px 0 0;font-size:12px;color:#7b8794;">`+templ.EscapeString(content)+`</p>`)
		return err
	})
}

// Join renders components one after another.
func Join(items ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, c := range items {
			if c == nil {
				continue
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
