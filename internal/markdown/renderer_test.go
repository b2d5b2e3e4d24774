package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := NewRenderer()

	html := r.Render("# Opening Hours\n\nOpen **daily** from 9 to 5.")
	if !strings.Contains(html, "<h1") {
		t.Fatalf("heading missing: %q", html)
	}
	if !strings.Contains(html, "<strong>daily</strong>") {
		t.Fatalf("emphasis missing: %q", html)
	}
}

func TestRenderEmptyInput(t *testing.T) {
	if got := NewRenderer().Render(""); got != "" {
		t.Fatalf("empty body renders empty, got %q", got)
	}
}

func TestRenderTables(t *testing.T) {
	src := "| Day | Hours |\n| --- | --- |\n| Mon | 9-5 |"
	html := NewRenderer().Render(src)
	if !strings.Contains(html, "<table>") {
		t.Fatalf("GFM table missing: %q", html)
	}
}

func TestRenderEscapesRawHTML(t *testing.T) {
	html := NewRenderer().Render(`before <script>alert("x")</script> after`)
	if strings.Contains(html, "<script>") {
		t.Fatalf("raw HTML must not pass through: %q", html)
	}
}

func TestRenderAutoLinks(t *testing.T) {
	html := NewRenderer().Render("Visit https://example.com today")
	if !strings.Contains(html, `<a href="https://example.com"`) {
		t.Fatalf("linkify missing: %q", html)
	}
}

func TestRenderHeadingIDs(t *testing.T) {
	html := NewRenderer().Render("## Opening Hours")
	if !strings.Contains(html, `id="opening-hours"`) {
		t.Fatalf("auto heading id missing: %q", html)
	}
}
