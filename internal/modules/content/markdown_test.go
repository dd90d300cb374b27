package content

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	html := renderMarkdown("**bold** and [a link](https://example.com)")
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("bold not rendered: %s", html)
	}
	if !strings.Contains(html, `href="https://example.com"`) {
		t.Fatalf("link not rendered: %s", html)
	}
}

func TestRenderMarkdownPlainTextPassesThrough(t *testing.T) {
	t.Parallel()

	html := renderMarkdown("just words")
	if !strings.Contains(html, "just words") {
		t.Fatalf("content lost: %s", html)
	}
}
