// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Recursos catalog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when configured.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/recursos/internal/api"
	"github.com/taibuivan/recursos/internal/catalog/record"
	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/platform/config"
	"github.com/taibuivan/recursos/internal/platform/constants"
	"github.com/taibuivan/recursos/internal/platform/logging"
	"github.com/taibuivan/recursos/internal/platform/middleware"
	"github.com/taibuivan/recursos/internal/platform/migration"
	pgstore "github.com/taibuivan/recursos/internal/platform/postgres"
	redisstore "github.com/taibuivan/recursos/internal/platform/redis"
	"github.com/taibuivan/recursos/pkg/pagination"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log, _ := logging.New(logging.Options{})
	slog.SetDefault(log)

	log.Info("[Recursos] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	log, closeLog := logging.New(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})
	slog.SetDefault(log)
	defer func() { _ = closeLog() }()

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("redis", cfg.HasRedis()),
	)

	// Root context for startup, bounded so misconfiguration is caught quickly
	// rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb   *goredis.Client
		locks redisstore.NameLock = redisstore.NoopNameLock{}
	)
	if cfg.HasRedis() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		locks = redisstore.NewNameLock(rdb, cfg.NameLockTTL)
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	deps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		deps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	limits := pagination.Limits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	referenceRepository := reference.NewPostgresRepository(pool)
	referenceService := reference.NewService(referenceRepository, locks).WithLockRetry(cfg.NameLockRetry)
	resolver := reference.NewResolver(referenceRepository)

	resources := make(map[string]api.RouteProvider)
	for _, kind := range reference.Kinds {
		resources[kind.Name()] = reference.NewHandler(referenceService, kind, limits)
	}

	resources[record.Books.Name()] = record.NewHandler(
		record.NewService(record.Books, record.NewPostgresRepository(pool, record.Books), resolver), limits)
	resources[record.Tutorials.Name()] = record.NewHandler(
		record.NewService(record.Tutorials, record.NewPostgresRepository(pool, record.Tutorials), resolver), limits)
	resources[record.Links.Name()] = record.NewHandler(
		record.NewService(record.Links, record.NewPostgresRepository(pool, record.Links), resolver), limits)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(serverCtx)

	server := api.NewServer(cfg, log, limiter, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Resources: resources,
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
