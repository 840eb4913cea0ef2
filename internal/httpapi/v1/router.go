// Package v1 wires the JSON HTTP surface of the service. Handlers stay thin
// and delegate rules to the service layer.
package v1

import (
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/govalues/money"

	"github.com/tinoosan/daftar/internal/service/auth"
	"github.com/tinoosan/daftar/internal/service/category"
	"github.com/tinoosan/daftar/internal/service/expense"
	"github.com/tinoosan/daftar/internal/service/report"
	"github.com/tinoosan/daftar/internal/service/source"
)

// Options configures a Server.
type Options struct {
	Currency   money.Currency
	JWTSecret  []byte
	TokenTTL   time.Duration
	RecentDays int
	// BcryptCost zero means auth.DefaultCost.
	BcryptCost int
	// SecureCookie marks the session cookie Secure (HTTPS only).
	SecureCookie bool
	// Now is the clock for tokens and "recent" windows; nil means time.Now.
	Now func() time.Time
}

// Server wires handlers and middleware using Chi.
type Server struct {
	auth       auth.Service
	categories category.Service
	costs      expense.Service
	sources    source.Service
	reports    report.Service
	store      Store
	opts       Options
	log        *slog.Logger
	rt         *chi.Mux
}

// New constructs the HTTP server with routes and middleware over store.
func New(store Store, opts Options, logger *slog.Logger) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RecentDays <= 0 {
		opts.RecentDays = 7
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 2 * time.Hour
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		auth:       auth.New(store, store, auth.Options{Secret: opts.JWTSecret, TTL: opts.TokenTTL, Cost: opts.BcryptCost, Now: opts.Now}),
		categories: category.New(store, store),
		costs:      expense.New(store, store, opts.Currency, opts.Now),
		sources:    source.New(store, store, opts.Currency),
		reports:    report.New(store, opts.Currency),
		store:      store,
		opts:       opts,
		log:        logger,
		rt:         r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	// Health and metrics (unversioned, unauthenticated)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Handle("/metrics", metricsHandler())

	s.rt.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.signup)
		r.Post("/auth/login", s.login)
		r.Post("/auth/logout", s.logout)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/auth/me", s.me)

			r.Get("/categories", s.listCategories)
			r.Post("/categories", s.createCategory)
			r.Delete("/categories/{id}", s.deleteCategory)

			r.Get("/costs", s.listRecentCosts)
			r.Post("/costs", s.createCost)
			r.Get("/costs/{id}", s.getCost)
			r.Put("/costs/{id}", s.updateCost)
			r.Delete("/costs/{id}", s.deleteCost)

			r.Get("/sources", s.listSources)
			r.Post("/sources", s.createSource)
			r.Get("/sources/{id}", s.getSource)
			r.Put("/sources/{id}", s.updateSource)
			r.Delete("/sources/{id}", s.deleteSource)

			r.Get("/reports/{year}/{month}", s.getReport)
		})
	})
}
