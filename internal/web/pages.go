package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageCreate = "create.html"
	pageView   = "view.html"
	pageError  = "error.html"
)

var templateFuncs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04 UTC")
	},
}

type pages struct {
	byName map[string]*template.Template
}

// parsePages pairs every page with base.html, which renders the "content"
// block each page defines.
func parsePages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template)}
	for _, name := range []string{pageCreate, pageView, pageError} {
		tmpl, err := template.New("base.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		p.byName[name] = tmpl
	}
	return p, nil
}

type basePage struct {
	PageTitle string
	Notices   []session.Notice
}

func (a *App) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := a.pages.byName[name]
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		telemetry.LogError(r.Context(), "failed to render template",
			telemetry.LogString("template", name),
			telemetry.LogString("error", err.Error()),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	basePage
	Status  int
	Heading string
	Message string
}

func (a *App) renderError(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	a.renderPage(w, r, status, pageError, errorPage{
		basePage: basePage{PageTitle: heading},
		Status:   status,
		Heading:  heading,
		Message:  message,
	})
}

// popNotices drains the visitor's flash notices. Failures only cost the notices.
func (a *App) popNotices(r *http.Request) []session.Notice {
	if a.Sessions == nil {
		return nil
	}
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		return nil
	}
	notices, err := a.Sessions.Pop(r.Context(), id)
	if err != nil {
		telemetry.LogWarn(r.Context(), "failed to read notices", telemetry.LogString("error", err.Error()))
		return nil
	}
	return notices
}

func (a *App) pushNotice(r *http.Request, n session.Notice) {
	if a.Sessions == nil {
		return
	}
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		return
	}
	if err := a.Sessions.Push(r.Context(), id, n); err != nil {
		telemetry.LogWarn(r.Context(), "failed to store notice", telemetry.LogString("error", err.Error()))
	}
}
