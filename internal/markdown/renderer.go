package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts content-block markdown bodies into HTML. The renderer is
// stateless so a single instance can be shared across render passes without
// locking.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer constructs a renderer with GFM tables and strikethrough
// enabled and raw HTML disabled; section bodies come from operator input and
// are never trusted as markup.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
			),
		),
	}
}

// Render converts markdown into HTML. Errors degrade to the escaped plain
// text so a malformed body can never break a render pass.
func (r *Renderer) Render(markdown string) string {
	if markdown == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Sprintf("<p>%s</p>", html.EscapeString(markdown))
	}
	return buf.String()
}
