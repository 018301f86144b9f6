// Package sanitizer cleans untrusted HTML, such as markdown rendered from LLM
// replies, before it is embedded in a page.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	safePolicy *bluemonday.Policy
	initOnce   sync.Once
)

func initPolicy() {
	initOnce.Do(func() {
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
		safePolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// SanitizeHTML keeps basic formatting (paragraphs, emphasis, lists, code,
// links) and strips everything else, including scripts, event handlers and
// javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicy()
	return safePolicy.Sanitize(s)
}
