package session

import (
	"errors"
	"net/http"

	"github.com/PabloPavan/snipdeck/internal/telemetry"
)

// Middleware attaches a visitor session to every request, creating one when
// the cookie is missing or stale. Store failures never block the request;
// the page just renders without notices.
func Middleware(mgr *Manager, cookieCfg CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *Session
			if id, ok := cookieCfg.Read(r); ok {
				s, err := mgr.Get(ctx, id)
				switch {
				case err == nil:
					sess = s
				case !errors.Is(err, ErrNotFound):
					telemetry.LogWarn(ctx, "session lookup failed", telemetry.LogString("error", err.Error()))
				}
			}

			if sess == nil {
				s, err := mgr.Create(ctx)
				if err != nil {
					telemetry.LogWarn(ctx, "session create failed", telemetry.LogString("error", err.Error()))
					next.ServeHTTP(w, r)
					return
				}
				sess = s
				cookieCfg.Write(w, sess.ID, sess.ExpiresAt)
			} else {
				refreshed, ok, err := mgr.Refresh(ctx, sess)
				if err != nil {
					if errors.Is(err, ErrNotFound) {
						cookieCfg.Clear(w)
					}
					next.ServeHTTP(w, r)
					return
				}
				if ok {
					cookieCfg.Write(w, refreshed.ID, refreshed.ExpiresAt)
				}
				sess = refreshed
			}

			next.ServeHTTP(w, r.WithContext(WithID(ctx, sess.ID)))
		})
	}
}
