package newsletter

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/jpmhone/folio/pkg/email/templates"
)

const (
	headingStyle = "margin:0 0 16px;font-size:22px;"
	contentStyle = "white-space:pre-wrap;line-height:1.6;"
)

// Email renders one issue for a single recipient.
func Email(issue Issue, unsubscribeURL string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h2 style="`+headingStyle+`">`+templ.EscapeString(issue.Subject)+`</h2>`+
			`<div style="`+contentStyle+`">`+templ.EscapeString(issue.Content)+`</div>`)
		return err
	})
	footer := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `You're receiving this because you subscribed to our newsletter.<br>`); err != nil {
			return err
		}
		return templates.Link(unsubscribeURL, "Unsubscribe here").Render(ctx, w)
	})
	return templates.Layout(issue.Subject, body, footer)
}
