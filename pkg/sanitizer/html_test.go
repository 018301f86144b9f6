package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weathersage/sage/pkg/sanitizer"
)

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps paragraphs and emphasis",
			input:    "<p>Expect <strong>sunshine</strong> and <em>light winds</em>.</p>",
			expected: "<p>Expect <strong>sunshine</strong> and <em>light winds</em>.</p>",
		},
		{
			name:     "keeps lists",
			input:    "<ul><li>umbrella</li><li>scarf</li></ul>",
			expected: "<ul><li>umbrella</li><li>scarf</li></ul>",
		},
		{
			name:     "removes script",
			input:    "<p>Rain</p><script>alert(1)</script>",
			expected: "<p>Rain</p>",
		},
		{
			name:     "removes event handlers",
			input:    `<p onclick="steal()">Fog</p>`,
			expected: "<p>Fog</p>",
		},
		{
			name:     "drops headings but keeps text",
			input:    "<h1>Today</h1>",
			expected: "Today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTML_Links(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<a href="https://www.metoffice.gov.uk">Met Office</a>`)
	require.Contains(t, out, `href="https://www.metoffice.gov.uk"`)
	require.Contains(t, out, `rel="nofollow`)
	require.Contains(t, out, `target="_blank"`)

	out = sanitizer.SanitizeHTML(`<a href="javascript:alert(1)">click</a>`)
	require.NotContains(t, out, "javascript")
}

func TestSanitizeHTML_XSSVectors(t *testing.T) {
	t.Parallel()

	vectors := []string{
		`<img src=x onerror=alert(1)>`,
		`<svg onload=alert(1)>`,
		`<iframe src="javascript:alert(1)"></iframe>`,
		`<body onload=alert(1)>`,
		`<a href="data:text/html;base64,PHNjcmlwdD5hbGVydCgxKTwvc2NyaXB0Pg==">x</a>`,
		`<style>body{background:url("javascript:alert(1)")}</style>`,
	}

	for _, v := range vectors {
		out := strings.ToLower(sanitizer.SanitizeHTML(v))
		require.NotContains(t, out, "onerror", v)
		require.NotContains(t, out, "onload", v)
		require.NotContains(t, out, "javascript:", v)
		require.NotContains(t, out, "<iframe", v)
		require.NotContains(t, out, "<style", v)
		require.NotContains(t, out, "data:text/html", v)
	}
}
