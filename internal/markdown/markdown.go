// Package markdown renders portfolio Markdown to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Style is the chroma style used for fenced code blocks.
const Style = "github"

// Renderer converts Markdown to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a renderer with GFM, heading ids and syntax highlighting.
// Raw HTML in the source is escaped.
func New() *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(Style),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)}
}

// Render converts src to HTML that is safe to place in a template.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// RenderCode renders source as a highlighted fenced block in lang.
func (r *Renderer) RenderCode(lang, source string) (template.HTML, error) {
	fence := "```"
	for bytes.Contains([]byte(source), []byte(fence)) {
		fence += "`"
	}
	return r.Render(fence + lang + "\n" + source + "\n" + fence + "\n")
}
