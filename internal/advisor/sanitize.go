/**
* Name: 			sanitize.go
* Description: 		Converts model markdown output into HTML safe for display
* Workflow: 		Render markdown, strip everything outside the allow-list
 */

package advisor

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// The renderer passes raw HTML through untouched; safety comes entirely
// from the policy below. That keeps Sanitize idempotent: feeding its own
// output back in renders the HTML verbatim and the policy has nothing
// left to strip.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
		goldmarkhtml.WithUnsafe(),
	),
)

var htmlPolicy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "h1", "h2", "h3", "h4",
		"strong", "em", "b", "i",
		"ul", "ol", "li", "br", "hr",
		"table", "thead", "tbody", "tr", "th", "td",
		"blockquote", "code", "pre",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(true)
	p.SkipElementsContent("script", "style")
	return p
}

// Sanitize converts raw model output (assumed markdown) into HTML that can
// be embedded directly without further escaping. It never fails: anything
// the renderer chokes on is escaped instead.
func Sanitize(raw string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(raw), &buf); err != nil {
		return "<p>" + html.EscapeString(raw) + "</p>"
	}
	return strings.TrimSpace(htmlPolicy.Sanitize(buf.String()))
}
