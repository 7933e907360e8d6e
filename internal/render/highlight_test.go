package render

import (
	"strings"
	"testing"
)

func TestRenderEscapesContent(t *testing.T) {
	h := NewHighlighter(DefaultStyle)

	out, err := h.Render("<script>alert(1)</script>", Plain)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("content was not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("escaped content missing: %s", html)
	}
}

func TestRenderHighlightsKnownLanguage(t *testing.T) {
	h := NewHighlighter("no-such-style")

	plain, err := h.Render("def f():\n    return 1\n", Plain)
	if err != nil {
		t.Fatalf("render plain: %v", err)
	}
	python, err := h.Render("def f():\n    return 1\n", Python)
	if err != nil {
		t.Fatalf("render python: %v", err)
	}
	if plain == python {
		t.Fatal("expected python highlighting to differ from plain output")
	}
	if !strings.Contains(string(python), "return") {
		t.Fatalf("content missing from output: %s", python)
	}
}

func TestPlainHTMLFallback(t *testing.T) {
	got := string(plainHTML("a < b"))
	if got != `<pre class="plain">a &lt; b</pre>` {
		t.Fatalf("unexpected fallback: %s", got)
	}
}
