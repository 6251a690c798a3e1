package templates

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const (
	bodyStyle      = "margin:0;padding:0;background:#f4f4f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;color:#18181b;"
	containerStyle = "max-width:600px;margin:0 auto;padding:32px 24px;background:#ffffff;"
	footerStyle    = "max-width:600px;margin:0 auto;padding:16px 24px;font-size:12px;line-height:1.5;color:#71717a;text-align:center;"
	linkStyle      = "color:#71717a;text-decoration:underline;"
)

// Layout wraps body in the shared email chrome. footer is rendered below
// the content box and may be nil.
func Layout(title string, body, footer templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1.0"><title>`+
			templ.EscapeString(title)+`</title></head><body style="`+bodyStyle+`">`+
			`<div style="`+containerStyle+`">`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}
		if footer != nil {
			if _, err := io.WriteString(w, `<div style="`+footerStyle+`">`); err != nil {
				return err
			}
			if err := footer.Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `</div>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Link renders an escaped anchor in the footer style.
func Link(href, text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<a href="`+templ.EscapeString(href)+`" style="`+linkStyle+`">`+
			templ.EscapeString(text)+`</a>`)
		return err
	})
}

// Render produces the HTML body for a message built from components.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("templates: render: %w", err)
	}
	return buf.String(), nil
}
