package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds the HTTP settings of the router
type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter builds the Chi router with middleware, the Huma API and the
// metrics endpoint
func NewRouter(cfg RouterConfig, deps Dependencies) http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(zerologLogger())
	router.Use(metricsRecorder(deps.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create Huma API, docs at /api/docs and the document at /api/openapi.json
	config := huma.DefaultConfig("White Space API", Version)
	config.DocsPath = "/api/docs"
	config.OpenAPIPath = "/api/openapi"
	api := humachi.New(router, config)

	RegisterRoutes(api, deps)

	router.Handle("/metrics", deps.Metrics.Handler())

	return router
}
