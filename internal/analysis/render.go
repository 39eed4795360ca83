package analysis

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.UGCPolicy()

// RenderHTML converts model-written Markdown into sanitized HTML.
func RenderHTML(md string) string {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	unsafe := markdown.ToHTML([]byte(md), p, renderer)
	return string(htmlPolicy.SanitizeBytes(unsafe))
}
