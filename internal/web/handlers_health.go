package web

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	Time   string `json:"time"`
}

// Health
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "disabled"
	if a.Cache != nil {
		cacheStatus = "ok"
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Cache(ctx); err != nil {
			cacheStatus = "down"
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Cache:  cacheStatus,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
