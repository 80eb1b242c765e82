package render

import (
	"strings"
	"testing"
)

func TestMarkdownBasics(t *testing.T) {
	md := []byte("# Title\n\nSome *emphasis* and a [link](https://example.com).\n")
	html := string(Markdown(md, "gruvbox"))

	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Title") {
		t.Errorf("Heading lost: %s", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Errorf("Emphasis lost: %s", html)
	}
	if !strings.Contains(html, `target="_blank"`) {
		t.Errorf("Links should open in a new tab: %s", html)
	}
}

func TestMarkdownHighlightsCode(t *testing.T) {
	md := []byte("```go\nfunc main() {}\n```\n")
	html := string(Markdown(md, "gruvbox"))

	if !strings.Contains(html, `<div class="highlight">`) {
		t.Errorf("Code block not wrapped: %s", html)
	}
	if !strings.Contains(html, "main") {
		t.Errorf("Code content lost: %s", html)
	}
}

func TestMarkdownCachedStable(t *testing.T) {
	md := []byte("# Cached\n")

	first := string(MarkdownCached(md, "gruvbox"))
	second := string(MarkdownCached(md, "gruvbox"))
	if first != second {
		t.Error("Cached render differs from the first")
	}

	// Theme participates in the key, so a theme switch re-renders.
	light := string(MarkdownCached(md, "catppuccin-latte"))
	if light == "" {
		t.Error("Theme-switched render empty")
	}
}

func TestHighlightCodeFallsBack(t *testing.T) {
	out := HighlightCode("SELECT 1;", "definitely-not-a-language", "gruvbox")
	if !strings.Contains(out, "SELECT") {
		t.Errorf("Fallback lost the code: %s", out)
	}
}
