// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/afrolatino/marketplace/internal/catalog/category"
	"github.com/afrolatino/marketplace/internal/catalog/product"
	"github.com/afrolatino/marketplace/internal/catalog/recipe"
	"github.com/afrolatino/marketplace/internal/catalog/region"
	"github.com/afrolatino/marketplace/internal/content/announcement"
	"github.com/afrolatino/marketplace/internal/content/blog"
	"github.com/afrolatino/marketplace/internal/content/notice"
	"github.com/afrolatino/marketplace/internal/content/testimonial"
	"github.com/afrolatino/marketplace/internal/orders"
	"github.com/afrolatino/marketplace/internal/payments"
	"github.com/afrolatino/marketplace/internal/platform/config"
	"github.com/afrolatino/marketplace/internal/platform/constants"
	"github.com/afrolatino/marketplace/internal/platform/middleware"
	"github.com/afrolatino/marketplace/internal/settings"
	"github.com/afrolatino/marketplace/internal/users/account"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, identity, and logout.
	Auth *auth.Handler

	// Account handles the admin user list and profile updates.
	Account *account.Handler

	// Product, Category, Region, and Recipe form the storefront catalog.
	Product  *product.Handler
	Category *category.Handler
	Region   *region.Handler
	Recipe   *recipe.Handler

	// Order handles checkout and order history.
	Order *orders.Handler

	// Payment handles Stripe and PayPal checkout flows plus webhooks.
	Payment *payments.Handler

	// Blog, Announcement, Notice, and Testimonial are the content surfaces.
	Blog         *blog.Handler
	Announcement *announcement.Handler
	Notice       *notice.Handler
	Testimonial  *testimonial.Handler

	// Settings handles the site settings singleton.
	Settings *settings.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// Authentication guards are mounted per route group by each domain
// handler rather than globally, so public catalog reads never touch the
// session store.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/products", h.Product.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/regions", h.Region.Routes())
		api.Mount("/recipes", h.Recipe.Routes())
		api.Mount("/orders", h.Order.Routes())
		api.Mount("/payments", h.Payment.Routes())
		api.Mount("/blog", h.Blog.Routes())
		api.Mount("/announcements", h.Announcement.Routes())
		api.Mount("/notices", h.Notice.Routes())
		api.Mount("/testimonials", h.Testimonial.Routes())
		api.Mount("/settings", h.Settings.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
