package api

import (
	"net/http"
	"time"

	"github.com/Rrens/rag-query-client/internal/api/handler"
	customMiddleware "github.com/Rrens/rag-query-client/internal/api/middleware"
	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/Rrens/rag-query-client/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the core components served by the router
type Deps struct {
	BaseURL   string
	Identity  domain.SessionIdentifier
	History   *service.HistoryViewModel
	Submitter *service.SubmissionController
	// Limiter is optional; submissions are unthrottled without it
	Limiter        customMiddleware.Limiter
	RequestTimeout time.Duration
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	sessionHandler := handler.NewSessionHandler(deps.Identity)
	queryHandler := handler.NewQueryHandler(deps.History, deps.Submitter)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/config", handler.ConfigInfo(deps.BaseURL))
		r.Get("/session", sessionHandler.Get)

		r.Route("/queries", func(r chi.Router) {
			r.Get("/", queryHandler.List)
			r.Post("/refresh", queryHandler.Refresh)

			r.Group(func(r chi.Router) {
				if deps.Limiter != nil {
					r.Use(customMiddleware.NewRateLimitMiddleware(deps.Limiter, deps.Identity).Limit)
				}
				r.Post("/", queryHandler.Submit)
			})

			r.Get("/{queryID}", queryHandler.Get)
		})

		r.Get("/draft", queryHandler.GetDraft)
		r.Put("/draft", queryHandler.PutDraft)
	})

	return r
}
