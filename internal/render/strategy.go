// Package render maps snippet languages to highlighting strategies and turns
// snippet content into HTML.
package render

import "github.com/PabloPavan/snipdeck/internal/snippets"

// Strategy is the highlighting behaviour applied to displayed or edited text.
type Strategy int

const (
	Plain Strategy = iota
	JavaScript
	Python
	HTML
	Cpp
	Markdown
	JSON
	Rust
	Java
	PHP
	SQL

	strategyCount
)

var strategyNames = [strategyCount]string{
	Plain:      "plain",
	JavaScript: "javascript",
	Python:     "python",
	HTML:       "html",
	Cpp:        "cpp",
	Markdown:   "markdown",
	JSON:       "json",
	Rust:       "rust",
	Java:       "java",
	PHP:        "php",
	SQL:        "sql",
}

// chroma lexer names
var strategyLexers = [strategyCount]string{
	Plain:      "plaintext",
	JavaScript: "javascript",
	Python:     "python",
	HTML:       "html",
	Cpp:        "cpp",
	Markdown:   "markdown",
	JSON:       "json",
	Rust:       "rust",
	Java:       "java",
	PHP:        "php",
	SQL:        "sql",
}

// Plain text has no entry on purpose: anything missing here renders as Plain.
var byLanguage = map[snippets.Language]Strategy{
	snippets.LanguageJavaScript: JavaScript,
	snippets.LanguageTypeScript: JavaScript,
	snippets.LanguagePython:     Python,
	snippets.LanguageHTML:       HTML,
	snippets.LanguageCpp:        Cpp,
	snippets.LanguageMarkdown:   Markdown,
	snippets.LanguageJSON:       JSON,
	snippets.LanguageRust:       Rust,
	snippets.LanguageJava:       Java,
	snippets.LanguagePHP:        PHP,
	snippets.LanguageSQL:        SQL,
}

func ForLanguage(lang snippets.Language) Strategy {
	if s, ok := byLanguage[lang]; ok {
		return s
	}
	return Plain
}

func (s Strategy) valid() bool {
	return s >= 0 && s < strategyCount
}

func (s Strategy) String() string {
	if !s.valid() {
		return strategyNames[Plain]
	}
	return strategyNames[s]
}

func (s Strategy) Lexer() string {
	if !s.valid() {
		return strategyLexers[Plain]
	}
	return strategyLexers[s]
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func Strategies() []Strategy {
	out := make([]Strategy, 0, strategyCount)
	for s := Plain; s < strategyCount; s++ {
		out = append(out, s)
	}
	return out
}
