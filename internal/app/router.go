package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"group-manager/internal/api"
	"group-manager/internal/config"
	"group-manager/internal/middleware"
)

// NewRouter builds the HTTP handler: public health check plus the
// authenticated /v1 API.
func NewRouter(a *App, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	// Public endpoints, no auth required
	r.Get("/healthz", api.Healthz)

	// Authenticated API routes under /v1 prefix
	handler := api.NewHandler(a.Services.Group, a.Services.Audit)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticator(a.Validator, middleware.IdentityConfig{
			SubjectClaim: cfg.Auth.SubjectClaim,
			EmailClaim:   cfg.Auth.EmailClaim,
		}))
		handler.Routes(r)
	})

	return r
}
