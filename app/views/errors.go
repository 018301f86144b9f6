package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage renders the body of an error page.
func ErrorPage(code int, title, message, requestID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main><section class="sage-error" role="alert">`)
		hw.raw(`<p class="sage-error-code">` + strconv.Itoa(code) + `</p>`)
		hw.raw(`<h1>`)
		hw.text(title)
		hw.raw(`</h1><p>`)
		hw.text(message)
		hw.raw(`</p>`)
		if requestID != "" {
			hw.raw(`<p class="sage-meta">Request ID: <code>`)
			hw.text(requestID)
			hw.raw(`</code></p>`)
		}
		hw.raw(`<p><a href="/">Back to the forecast</a></p></section></main>`)
		return hw.err
	})
}

// ErrorContent renders an inline error for HTMX swaps.
func ErrorContent(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<p class="sage-error" role="alert">`)
		hw.text(message)
		hw.raw(`</p>`)
		return hw.err
	})
}
