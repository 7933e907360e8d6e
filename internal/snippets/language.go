package snippets

import "strings"

type Language string

const (
	LanguagePlainText  Language = "txt"
	LanguageHTML       Language = "html"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageCpp        Language = "c++"
	LanguageMarkdown   Language = "markdown"
	LanguageJSON       Language = "json"
	LanguageRust       Language = "rust"
	LanguageJava       Language = "java"
	LanguagePHP        Language = "php"
	LanguageSQL        Language = "sql"
)

var languageNames = map[Language]string{
	LanguagePlainText:  "Plain text",
	LanguageHTML:       "HTML",
	LanguageJavaScript: "JavaScript",
	LanguageTypeScript: "TypeScript",
	LanguagePython:     "Python",
	LanguageCpp:        "C++",
	LanguageMarkdown:   "Markdown",
	LanguageJSON:       "JSON",
	LanguageRust:       "Rust",
	LanguageJava:       "Java",
	LanguagePHP:        "PHP",
	LanguageSQL:        "SQL",
}

// Languages lists every supported tag in menu order.
func Languages() []Language {
	return []Language{
		LanguagePlainText,
		LanguageHTML,
		LanguageJavaScript,
		LanguageTypeScript,
		LanguagePython,
		LanguageCpp,
		LanguageMarkdown,
		LanguageJSON,
		LanguageRust,
		LanguageJava,
		LanguagePHP,
		LanguageSQL,
	}
}

func ParseLanguage(raw string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := languageNames[l]
	return l, ok
}

func (l Language) Known() bool {
	_, ok := languageNames[l]
	return ok
}

// DisplayName falls back to the raw tag for languages the service knows and we don't.
func (l Language) DisplayName() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return string(l)
}
