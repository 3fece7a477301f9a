// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"context"
	"net/http"
	"time"

	"commonplace-api/api/middleware"
	"commonplace-api/core/interfaces"
	"commonplace-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	apiTitle       = "Commonplace API"
	apiVersion     = "1.0.0"
	apiDescription = "API for rewriting the text of rich-content documents while keeping their images and embeds in place"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	Flags      featureflags.Manager
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
}

// Server bundles the Huma API with the resources that need closing on shutdown
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// Close releases background resources held by middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Close()
	}
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(defaultCORS())

	api := humachi.New(router, apiConfig())

	// The OpenAPI document is automatically available at /openapi.json
	// The Swagger UI is automatically available at /docs

	return api, router
}

// NewServer creates a new API with middleware configured
func NewServer(cfg APIConfig) *Server {
	router := chi.NewRouter()

	// CORS should be first middleware
	router.Use(defaultCORS())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagsMiddleware(cfg.Flags))
	}

	srv := &Server{Router: router}
	if rateLimited(cfg) {
		srv.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(srv.limiter))
	}

	srv.API = humachi.New(router, apiConfig())
	return srv
}

// rateLimited reports whether rate limiting applies: it needs a positive
// limit and window, and the flag when a manager is configured
func rateLimited(cfg APIConfig) bool {
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return false
	}
	if cfg.Flags == nil {
		return true
	}
	return cfg.Flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled)
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = apiDescription
	return config
}

func defaultCORS() func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}
