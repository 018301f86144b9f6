package views

import (
	"io"
	"time"

	"github.com/a-h/templ"
)

// htmlWriter writes HTML fragments and keeps the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text writes s as escaped plain text.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) list(class string, items []string) {
	if len(items) == 0 {
		return
	}
	hw.raw(`<ul class="` + class + `">`)
	for _, it := range items {
		hw.raw("<li>")
		hw.text(it)
		hw.raw("</li>")
	}
	hw.raw("</ul>")
}

// formatHour formats the summary hour for display.
func formatHour(t time.Time) string {
	return t.Format("Mon 2 Jan, 15:04")
}
