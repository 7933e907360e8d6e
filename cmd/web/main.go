package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/PabloPavan/snipdeck/docs"
	"github.com/PabloPavan/snipdeck/internal"
	"github.com/PabloPavan/snipdeck/internal/ratelimit"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/session"
	"github.com/PabloPavan/snipdeck/internal/snippets"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
	"github.com/PabloPavan/snipdeck/internal/web"
)

const serviceName = "snipdeck-web"

func main() {
	_ = godotenv.Load()

	port := internal.Env("APP_PORT", "8080")
	apiURL := internal.MustEnv("SNIPDECK_API_URL")
	redisURL := strings.TrimSpace(internal.Env("REDIS_URL", ""))

	shutdown := telemetry.InitTracer(serviceName)
	defer shutdown(context.Background())
	shutdownMetrics := telemetry.InitMetrics(serviceName)
	defer shutdownMetrics(context.Background())
	shutdownLogger := telemetry.InitLogger(serviceName)
	defer shutdownLogger(context.Background())
	snippets.InitTelemetry(serviceName)

	remoteTimeout := parseDurationEnv("REMOTE_TIMEOUT", 10*time.Second)
	client := snippets.NewClient(apiURL, snippets.NewInstrumentedClient(remoteTimeout))
	client.APIKey = strings.TrimSpace(internal.Env("SNIPDECK_API_KEY", ""))

	cacheTTL := parseDurationEnv("SNIPPETS_CACHE_TTL", 2*time.Minute)
	sessionTTL := parseDurationEnv("SESSION_TTL", 24*time.Hour)

	var (
		cache        snippets.Cache
		sessionStore session.Store
		redisClient  *redis.Client
		cacheHealth  web.HealthChecker
	)
	if redisURL != "" {
		redisOpt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()

		cache = snippets.NewRedisCache(redisClient, internal.Env("SNIPPETS_CACHE_PREFIX", "snipdeck:cache:"))
		sessionStore = session.NewRedisStore(redisClient, internal.Env("SESSION_REDIS_PREFIX", "snipdeck:session:"))
		cacheHealth = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		log.Printf("REDIS_URL not set, using in-memory cache and sessions")
		cache = snippets.NewMemoryCache(parseIntEnv("SNIPPETS_CACHE_SIZE", 512))
		sessionStore = session.NewMemoryStore()
	}

	svc := &snippets.Service{
		Remote:   client,
		Cache:    cache,
		CacheTTL: cacheTTL,
	}

	sessionManager := &session.Manager{
		Store:         sessionStore,
		TTL:           sessionTTL,
		RefreshBefore: sessionTTL / 2,
	}
	cookie := session.CookieConfig{
		Name:     internal.Env("SESSION_COOKIE_NAME", session.DefaultCookieName),
		Path:     internal.Env("SESSION_COOKIE_PATH", "/"),
		Domain:   internal.Env("SESSION_COOKIE_DOMAIN", ""),
		Secure:   parseBoolEnv("SESSION_COOKIE_SECURE", true),
		SameSite: parseSameSiteEnv("SESSION_COOKIE_SAMESITE", http.SameSiteLaxMode),
	}

	createLimiter := &ratelimit.Limiter{
		Client: redisClient,
		Prefix: ratelimit.DefaultPrefix,
		Limit:  parseIntEnv("CREATE_RATE_LIMIT", ratelimit.DefaultLimit),
		Window: parseDurationEnv("CREATE_RATE_WINDOW", ratelimit.DefaultWindow),
	}

	app := &web.App{
		Snippets:      svc,
		Highlighter:   render.NewHighlighter(internal.Env("HIGHLIGHT_STYLE", render.DefaultStyle)),
		Sessions:      sessionManager,
		Cookie:        cookie,
		CreateLimiter: createLimiter,
		Cache:         cacheHealth,
		PublicURL:     internal.Env("SNIPDECK_PUBLIC_URL", ""),
	}

	handler, err := web.NewRouter(app, web.RouterOptions{
		ServiceName:    serviceName,
		AllowedOrigins: parseListEnv("CORS_ALLOWED_ORIGINS"),
	})
	if err != nil {
		log.Fatalf("router error: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("web listening on :%s (snippet service %s)", port, client.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func parseDurationEnv(key string, def time.Duration) time.Duration {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return d
}

func parseIntEnv(key string, def int) int {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return n
}

func parseBoolEnv(key string, def bool) bool {
	val := strings.TrimSpace(internal.Env(key, ""))
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
	return b
}

func parseSameSiteEnv(key string, def http.SameSite) http.SameSite {
	val := strings.ToLower(strings.TrimSpace(internal.Env(key, "")))
	switch val {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	case "":
		return def
	default:
		log.Printf("invalid %s: %q, using default", key, val)
		return def
	}
}

func parseListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(internal.Env(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
