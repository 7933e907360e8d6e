package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
)

type RouterOptions struct {
	ServiceName    string
	AllowedOrigins []string
}

func NewRouter(app *App, opts RouterOptions) (http.Handler, error) {
	if err := app.init(); err != nil {
		return nil, err
	}
	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "snipdeck-web"
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.TraceMiddleware(serviceName))
	r.Use(telemetry.MetricsMiddleware)
	r.Use(telemetry.LogMiddleware(serviceName))

	r.Get("/health", app.Health)
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "If-None-Match"},
			ExposedHeaders: []string{"ETag"},
			MaxAge:         300,
		}))
		r.Get("/languages", app.Languages)
		r.Get("/snippets/{slug}/view", app.ViewState)
	})

	// Pages
	r.Group(func(r chi.Router) {
		if app.Sessions != nil {
			r.Use(session.Middleware(app.Sessions, app.Cookie))
		}
		r.Get("/", app.CreateForm)
		r.Post("/", app.CreateSubmit)
		r.Get("/{slug}", app.ViewSnippet)
	})

	return r, nil
}
