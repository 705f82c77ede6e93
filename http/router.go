package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"college-predictor/service"
)

type RouterConfig struct {
	Search      *service.SearchService
	Limiter     *RateLimiter
	CORSOrigins []string
}

// NewRouter mounts the API. Only the endpoints that reach the backend are
// rate limited.
func NewRouter(cfg RouterConfig) http.Handler {
	client := cfg.Search.Client()
	filters := NewFiltersHandler(client)
	search := NewSearchHandler(cfg.Search)
	results := NewResultsHandler(client)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", filters.GetFilters)
		r.Get("/results", results.GetResults)
		r.Get("/results/export", results.Export)

		r.Group(func(r chi.Router) {
			if cfg.Limiter != nil {
				r.Use(RateLimitMiddleware(cfg.Limiter))
			}
			r.Post("/filters/reload", filters.Reload)
			r.Post("/search", search.Submit)
			r.Post("/search/relax", search.Relax)
		})
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
