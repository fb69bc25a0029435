package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRendersBoldMarkdown(t *testing.T) {
	out := Sanitize("**Save 20%**")

	assert.Contains(t, out, "<strong>Save 20%</strong>")
	assert.NotContains(t, out, "**")
}

func TestSanitizeRendersStructuredMarkdown(t *testing.T) {
	out := Sanitize("# Investment Plan\n\n- buy index funds\n- keep an emergency fund\n\n1. review quarterly")

	assert.Contains(t, out, "<h1>Investment Plan</h1>")
	assert.Contains(t, out, "<li>buy index funds</li>")
	assert.Contains(t, out, "<ol>")
}

func TestSanitizeStripsScripts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"inline script", "Hello <script>alert('x')</script> world"},
		{"script in markdown", "**bold** <script src=\"https://evil.example/x.js\"></script>"},
		{"event handler", `<p onclick="steal()">advice</p>`},
		{"iframe", `<iframe src="https://evil.example"></iframe>ok`},
		{"javascript link", "[click](javascript:alert(1))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sanitize(tt.input)
			assert.NotContains(t, out, "<script")
			assert.NotContains(t, out, "onclick")
			assert.NotContains(t, out, "<iframe")
			assert.NotContains(t, out, "javascript:")
			assert.NotContains(t, out, "alert(")
		})
	}
}

func TestSanitizeKeepsSafeLinks(t *testing.T) {
	out := Sanitize("[docs](https://example.com/guide)")

	assert.Contains(t, out, `href="https://example.com/guide"`)
	assert.Contains(t, out, `rel="nofollow"`)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"**Save 20%**",
		"# Advice\n\n- buy\n- hold",
		"Hello <script>alert('x')</script> world",
		"[link](https://example.com)",
		"plain text advice with numbers 1. 2. 3.",
		"| asset | share |\n|---|---|\n| equity | 60% |",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func TestSanitizeNeverReturnsUnescapedRawOnEmpty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.NotContains(t, Sanitize(strings.Repeat("<", 50)), "<<")
}
