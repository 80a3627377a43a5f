// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

// Command api is the entry point for the AfroLatino Marketplace HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afrolatino/marketplace/internal/api"
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
	"github.com/afrolatino/marketplace/internal/platform/migration"
	pgstore "github.com/afrolatino/marketplace/internal/platform/postgres"
	redisstore "github.com/afrolatino/marketplace/internal/platform/redis"
	"github.com/afrolatino/marketplace/internal/platform/sec"
	"github.com/afrolatino/marketplace/internal/settings"
	"github.com/afrolatino/marketplace/internal/users/account"
	"github.com/afrolatino/marketplace/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTLMin)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────

	// Identity: the resolver backs every route guard in the system.
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resolver := auth.NewResolver(userRepository, sessionRepository, tokenService)
	authService := auth.NewService(userRepository, sessionRepository, tokenService)
	authHandler := auth.NewHandler(authService, resolver)

	accountService := account.NewService(userRepository, account.NewListRepository(pool), log)
	accountHandler := account.NewHandler(accountService, resolver)

	// Catalog: the category repository doubles as the product counter.
	categoryRepository := category.NewRepository(pool)
	categoryHandler := category.NewHandler(categoryRepository, resolver)
	productService := product.NewService(product.NewRepository(pool), categoryRepository, log)
	productHandler := product.NewHandler(productService, resolver)
	regionHandler := region.NewHandler(region.NewRepository(pool), resolver)
	recipeHandler := recipe.NewHandler(recipe.NewRepository(pool), resolver)

	// Site settings feed delivery pricing and payment credentials.
	settingsService := settings.NewService(settings.NewRepository(pool), settings.NewRedisCache(rdb, log), log)
	settingsHandler := settings.NewHandler(settingsService, resolver)

	orderRepository := orders.NewRepository(pool)
	orderService := orders.NewService(orderRepository, settingsService, log)
	orderHandler := orders.NewHandler(orderService, resolver)

	paymentService := payments.NewService(
		payments.NewRepository(pool),
		orderRepository,
		settingsService,
		payments.NewStripeClient(""),
		payments.NewPayPalClient(""),
		payments.Fallbacks{
			StripeAPIKey:        cfg.StripeAPIKey,
			StripeWebhookSecret: cfg.StripeWebhookSecret,
			PayPalClientID:      cfg.PayPalClientID,
			PayPalClientSecret:  cfg.PayPalClientSecret,
		},
		log,
	)
	paymentHandler := payments.NewHandler(paymentService)

	blogService := blog.NewService(blog.NewRepository(pool), log)
	blogHandler := blog.NewHandler(blogService, resolver)
	announcementHandler := announcement.NewHandler(announcement.NewRepository(pool), resolver)
	noticeHandler := notice.NewHandler(notice.NewRepository(pool), resolver)
	testimonialHandler := testimonial.NewHandler(testimonial.NewRepository(pool), resolver)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Product:      productHandler,
		Category:     categoryHandler,
		Region:       regionHandler,
		Recipe:       recipeHandler,
		Order:        orderHandler,
		Payment:      paymentHandler,
		Blog:         blogHandler,
		Announcement: announcementHandler,
		Notice:       noticeHandler,
		Testimonial:  testimonialHandler,
		Settings:     settingsHandler,
	}

	// appCtx outlives startup; it stops background middleware work
	// (rate limiter cleanup) when the process shuts down.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
