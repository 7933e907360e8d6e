package web

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/ratelimit"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/snippets"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
)

const maxFormBytes = 1 << 20

type languageOption struct {
	Tag      snippets.Language
	Name     string
	Strategy render.Strategy
	Selected bool
}

type createPage struct {
	basePage
	Languages []languageOption
	Draft     snippets.Draft
	Strategy  render.Strategy
	Error     string
}

func (a *App) newCreatePage(r *http.Request, d snippets.Draft, errMsg string) createPage {
	if d.Language == "" {
		d.Language = snippets.LanguagePlainText
	}
	langs := snippets.Languages()
	opts := make([]languageOption, 0, len(langs))
	for _, l := range langs {
		opts = append(opts, languageOption{
			Tag:      l,
			Name:     l.DisplayName(),
			Strategy: render.ForLanguage(l),
			Selected: l == d.Language,
		})
	}
	return createPage{
		basePage:  basePage{PageTitle: "New snippet", Notices: a.popNotices(r)},
		Languages: opts,
		Draft:     d,
		Strategy:  render.ForLanguage(d.Language),
		Error:     errMsg,
	}
}

func (a *App) CreateForm(w http.ResponseWriter, r *http.Request) {
	a.renderPage(w, r, http.StatusOK, pageCreate, a.newCreatePage(r, snippets.NewDraft(), ""))
}

func (a *App) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		a.renderPage(w, r, http.StatusBadRequest, pageCreate, a.newCreatePage(r, snippets.NewDraft(), "invalid form"))
		return
	}

	draft := snippets.Draft{
		Title:         r.PostForm.Get("title"),
		Language:      snippets.Language(strings.TrimSpace(r.PostForm.Get("language"))),
		Content:       r.PostForm.Get("content"),
		CommitMessage: r.PostForm.Get("commit_message"),
	}

	if err := a.allowCreate(r); err != nil {
		a.renderCreateError(w, r, draft, err)
		return
	}

	sid, _ := session.IDFromContext(r.Context())
	creator := a.creators.acquire(sid, a.Snippets)
	defer a.creators.release(sid)

	created, err := creator.Submit(r.Context(), draft)
	if err != nil {
		a.renderCreateError(w, r, draft, err)
		return
	}

	a.pushNotice(r, session.Notice{
		Level:   session.LevelSuccess,
		Message: "Snippet created! Slug: " + created.Slug,
	})
	http.Redirect(w, r, "/"+url.PathEscape(created.Slug), http.StatusSeeOther)
}

func (a *App) allowCreate(r *http.Request) error {
	if a.CreateLimiter == nil {
		return nil
	}
	allowed, retryAfter, err := a.CreateLimiter.Allow(r.Context(), ratelimit.Key("create", clientIP(r)))
	if err != nil {
		telemetry.LogWarn(r.Context(), "create rate limiter unavailable", telemetry.LogString("error", err.Error()))
		return nil
	}
	if !allowed {
		return apperrors.RateLimit("too many snippets created, try again later", retryAfter)
	}
	return nil
}

func (a *App) renderCreateError(w http.ResponseWriter, r *http.Request, draft snippets.Draft, err error) {
	appErr := toAppError(err)
	if appErr.Kind == apperrors.KindInternal {
		telemetry.LogError(r.Context(), "snippet create failed", telemetry.LogString("error", err.Error()))
	}
	setRetryAfter(w, appErr)
	a.renderPage(w, r, statusFromKind(appErr.Kind), pageCreate, a.newCreatePage(r, draft, createErrorMessage(appErr)))
}

func createErrorMessage(appErr *apperrors.Error) string {
	if appErr.Kind == apperrors.KindTransport {
		return "Failed to create snippet. Please try again."
	}
	return errorMessage(appErr)
}

func toAppError(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.KindInternal, "", err)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
