package web

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
	"github.com/PabloPavan/snipdeck/internal/viewer"
)

type renderedVersion struct {
	VersionNumber int
	CommitMessage string
	CreatedAt     time.Time
	Content       string
	HTML          template.HTML
	Selected      bool
}

type viewPage struct {
	basePage
	View     viewer.View
	Versions []renderedVersion
}

// errVersionQuery marks a ?version= value that is not a number.
var errVersionQuery = apperrors.New(apperrors.KindInvalidInput, "invalid version")

// loadController fetches slug and applies the optional ?version= selection.
// A bad selection is reported as versionErr and leaves the latest version
// selected; err is set only when the snippet itself could not be loaded.
func (a *App) loadController(r *http.Request, slug string) (c *viewer.Controller, versionErr *apperrors.Error, err error) {
	c = viewer.NewController(a.Snippets, slug, viewer.ShareURL(a.publicBase(r), slug))
	if failed, ok := c.Load(r.Context()).(viewer.Failed); ok {
		return c, nil, failed.Err
	}

	raw := strings.TrimSpace(r.URL.Query().Get("version"))
	if raw == "" {
		return c, nil, nil
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return c, errVersionQuery, nil
	}
	if _, ok := c.Select(n); !ok {
		return c, apperrors.New(apperrors.KindNotFound, "version "+raw+" not found"), nil
	}
	return c, nil, nil
}

func (a *App) ViewSnippet(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	c, versionErr, err := a.loadController(r, slug)
	if err != nil {
		a.renderLoadError(w, r, err)
		return
	}

	notices := a.popNotices(r)
	if versionErr != nil {
		notices = append(notices, session.Notice{
			Level:   session.LevelWarning,
			Message: "Version " + r.URL.Query().Get("version") + " not found, showing the latest version.",
		})
	}

	ready := c.State().(viewer.Ready)
	strategy := c.Strategy()
	versions := make([]renderedVersion, 0, len(ready.Snippet.Versions))
	for i := len(ready.Snippet.Versions) - 1; i >= 0; i-- {
		v := ready.Snippet.Versions[i]
		html, err := a.Highlighter.Render(v.Content, strategy)
		if err != nil {
			telemetry.LogWarn(r.Context(), "highlighting failed",
				telemetry.LogString("slug", ready.Snippet.Slug),
				telemetry.LogInt("version", v.VersionNumber),
				telemetry.LogString("error", err.Error()),
			)
		}
		versions = append(versions, renderedVersion{
			VersionNumber: v.VersionNumber,
			CommitMessage: v.CommitMessage,
			CreatedAt:     v.CreatedAt,
			Content:       v.Content,
			HTML:          html,
			Selected:      v.VersionNumber == ready.Selected.VersionNumber,
		})
	}

	title := ready.Snippet.DisplayTitle()
	if title == "" {
		title = ready.Snippet.Slug
	}
	a.renderPage(w, r, http.StatusOK, pageView, viewPage{
		basePage: basePage{PageTitle: title, Notices: notices},
		View:     c.View(),
		Versions: versions,
	})
}

func (a *App) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		a.renderError(w, r, http.StatusNotFound, "Snippet not found",
			"The snippet you are looking for does not exist.")
	case apperrors.KindInvalidInput:
		a.renderError(w, r, http.StatusBadRequest, "Invalid link", "This snippet link is not valid.")
	case apperrors.KindTransport:
		telemetry.LogWarn(r.Context(), "snippet fetch failed", telemetry.LogString("error", err.Error()))
		a.renderError(w, r, http.StatusBadGateway, "Could not load snippet",
			"The snippet service is unavailable. Please try again later.")
	default:
		telemetry.LogError(r.Context(), "snippet fetch failed", telemetry.LogString("error", err.Error()))
		a.renderError(w, r, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
	}
}
