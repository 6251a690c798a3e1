package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/jpmhone/folio/pkg/handler"
)

const pageStyle = `body{font-family:Arial,sans-serif;max-width:560px;margin:40px auto;padding:0 20px;color:#333}` +
	`button{background:#333;color:#fff;border:0;padding:10px 18px;cursor:pointer}.muted{color:#777;font-size:13px}`

func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1.0">`+
			`<meta name="robots" content="noindex"><title>`+templ.EscapeString(title)+`</title>`+
			`<style>`+pageStyle+`</style></head><body>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func raw(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

// confirmPage asks before unsubscribing so link scanners following GET
// requests never change anything.
func confirmPage(email, action string) templ.Component {
	return page("Unsubscribe", raw(
		`<h1>Unsubscribe</h1>`+
			`<p>Stop sending newsletters to <strong>`+templ.EscapeString(email)+`</strong>?</p>`+
			`<form method="post" action="`+templ.EscapeString(action)+`">`+
			`<button type="submit">Unsubscribe</button></form>`))
}

func unsubscribedPage(email string) templ.Component {
	return page("Unsubscribed", raw(
		`<h1>You have been unsubscribed</h1>`+
			`<p><strong>`+templ.EscapeString(email)+`</strong> will no longer receive newsletters.</p>`))
}

func messagePage(title, message string) templ.Component {
	return page(title, raw(`<h1>`+templ.EscapeString(title)+`</h1><p>`+templ.EscapeString(message)+`</p>`))
}

func errorPage(p handler.ErrorPageParams) templ.Component {
	body := `<h1>` + templ.EscapeString(p.Message) + `</h1>`
	if p.RequestID != "" {
		body += `<p class="muted">Error ` + strconv.Itoa(p.StatusCode) + ` · request ` + templ.EscapeString(p.RequestID) + `</p>`
	}
	return page("Error", raw(body))
}
