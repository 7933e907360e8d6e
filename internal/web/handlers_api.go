package web

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type LanguageResponse struct {
	Tag      snippets.Language `json:"tag"`
	Name     string            `json:"name"`
	Strategy render.Strategy   `json:"strategy" swaggertype:"string"`
}

// Languages
// @Summary List supported languages
// @Tags languages
// @Produce json
// @Success 200 {array} LanguageResponse
// @Router /api/languages [get]
func (a *App) Languages(w http.ResponseWriter, r *http.Request) {
	langs := snippets.Languages()
	out := make([]LanguageResponse, 0, len(langs))
	for _, l := range langs {
		out = append(out, LanguageResponse{
			Tag:      l,
			Name:     l.DisplayName(),
			Strategy: render.ForLanguage(l),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ViewState
// @Summary Get the view state of a snippet
// @Tags snippets
// @Produce json
// @Param slug path string true "snippet slug"
// @Param version query int false "version number, defaults to the latest"
// @Param If-None-Match header string false "etag of a cached response"
// @Success 200 {object} viewer.View
// @Success 304 {string} string
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/snippets/{slug}/view [get]
func (a *App) ViewState(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))

	c, versionErr, err := a.loadController(r, slug)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if versionErr != nil {
		writeAppError(w, versionErr)
		return
	}

	body, err := json.Marshal(c.View())
	if err != nil {
		writeAppError(w, apperrors.Wrap(apperrors.KindInternal, "failed to encode view", err))
		return
	}

	etag := viewETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func viewETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
