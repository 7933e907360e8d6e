package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/PabloPavan/snipdeck/internal"
	"github.com/PabloPavan/snipdeck/internal/ratelimit"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type SnippetsService interface {
	FetchSnippet(ctx context.Context, slug string) (*snippets.Snippet, error)
	CreateSnippet(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error)
}

// HealthChecker reports whether an optional dependency is reachable.
type HealthChecker func(ctx context.Context) error

type App struct {
	Snippets      SnippetsService
	Highlighter   *render.Highlighter
	Sessions      *session.Manager
	Cookie        session.CookieConfig
	CreateLimiter *ratelimit.Limiter
	Cache         HealthChecker
	// PublicURL is the base of share links. Empty means derive it from the request.
	PublicURL string

	pages    *pages
	creators *creatorRegistry
}

func (a *App) init() error {
	if a.Highlighter == nil {
		a.Highlighter = render.NewHighlighter(render.DefaultStyle)
	}
	if a.creators == nil {
		a.creators = newCreatorRegistry()
	}
	if a.pages == nil {
		p, err := parsePages()
		if err != nil {
			return err
		}
		a.pages = p
	}
	return nil
}

func (a *App) publicBase(r *http.Request) string {
	if base := strings.TrimSpace(a.PublicURL); base != "" {
		return internal.TrimBaseURL(base)
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
