// Package httpapi assembles the HTTP router and its middleware chain.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/UnicoContato/alpha7-IA-view/internal/handlers"
)

// Deps holds the wired handlers for the router.
type Deps struct {
	Search *handlers.SearchHandler
	Logger *slog.Logger
}

// NewRouter creates the HTTP router with logging, recovery and CORS.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/buscar-medicamentos", deps.Search)
	})
	r.Get("/", handlers.Health)

	return r
}
