// Package renderer turns registry articles into HTML pages: goldmark for
// the markdown body, a goquery pass that assigns the site's presentational
// classes, rating glyph lines, and html/template page assembly.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts article markdown to HTML
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates a goldmark pipeline with GFM tables and
// strikethrough, auto heading IDs, and hard wraps disabled.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
			),
		),
	}
}

// Render converts markdown source to HTML
func (r *MarkdownRenderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
