package render

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const DefaultStyle = "github"

type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter

	mu     sync.Mutex
	lexers map[Strategy]chroma.Lexer
}

func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(strings.TrimSpace(styleName))
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.WithLineNumbers(true),
			chromahtml.TabWidth(4),
		),
		lexers: make(map[Strategy]chroma.Lexer),
	}
}

// Render returns highlighted HTML. On failure it still returns escaped plain
// text alongside the error so the caller can show the content.
func (h *Highlighter) Render(content string, s Strategy) (template.HTML, error) {
	iterator, err := h.lexer(s).Tokenise(nil, content)
	if err != nil {
		return plainHTML(content), err
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return plainHTML(content), err
	}
	return template.HTML(buf.String()), nil
}

func (h *Highlighter) lexer(s Strategy) chroma.Lexer {
	h.mu.Lock()
	defer h.mu.Unlock()

	if l, ok := h.lexers[s]; ok {
		return l
	}
	l := lexers.Get(s.Lexer())
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	h.lexers[s] = l
	return l
}

func plainHTML(content string) template.HTML {
	return template.HTML(`<pre class="plain">` + template.HTMLEscapeString(content) + `</pre>`)
}
