package sage

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/weathersage/sage/pkg/sanitizer"
)

var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

// SummaryHTML converts the markdown summary to sanitized HTML.
func (s Summary) SummaryHTML() (string, error) {
	return RenderMarkdown(s.Summary)
}

// RenderMarkdown converts LLM markdown to HTML safe to embed in a page.
func RenderMarkdown(src string) (string, error) {
	mdOnce.Do(func() {
		md = goldmark.New()
	})

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("sage: render markdown: %w", err)
	}
	return sanitizer.SanitizeHTML(buf.String()), nil
}
