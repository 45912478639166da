package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/erazemk/breeders/internal/store"
)

// Options configures NewRouter.
type Options struct {
	Store *store.Store

	// Metrics defaults to a fresh registry bound to Store.
	Metrics *Metrics

	// Web serves everything outside the API (page, static assets). May be nil.
	Web http.Handler

	// AllowedOrigins for CORS. Defaults to any origin.
	AllowedOrigins []string
}

// NewRouter creates the HTTP handler with all endpoints registered.
func NewRouter(opts Options) http.Handler {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics(opts.Store)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	breeders := &BreedersHandler{Store: opts.Store}

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler(opts.Store))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/breeders", func(r chi.Router) {
		r.Get("/", breeders.List)
		r.Post("/", breeders.Create)

		r.Get("/search", breeders.List)
		r.Get("/search/", breeders.List)
		r.Get("/search/{query}", breeders.Search)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", breeders.Get)
			r.Put("/", breeders.Update)
			r.Patch("/", breeders.Patch)
			r.Delete("/", breeders.Delete)

			r.Get("/photo", breeders.GetPhoto)
			r.Put("/photo", breeders.UploadPhoto)
			r.Delete("/photo", breeders.DeletePhoto)
		})
	})

	if opts.Web != nil {
		r.Mount("/", opts.Web)
	}

	return r
}

// healthHandler reports whether the database answers a ping.
func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := st.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
