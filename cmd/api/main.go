// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Storyhub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations (idempotent).
//  4. Open the story store (PostgreSQL or SQLite).
//  5. Connect to Redis and object storage when configured.
//  6. Seed categories from the YAML file when configured.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/storyhub/internal/api"
	"github.com/taibuivan/storyhub/internal/core/category"
	"github.com/taibuivan/storyhub/internal/core/story"
	"github.com/taibuivan/storyhub/internal/platform/config"
	"github.com/taibuivan/storyhub/internal/platform/constants"
	"github.com/taibuivan/storyhub/internal/platform/migration"
	"github.com/taibuivan/storyhub/internal/platform/objectstore"
	pgstore "github.com/taibuivan/storyhub/internal/platform/postgres"
	redisstore "github.com/taibuivan/storyhub/internal/platform/redis"
	sqlitestore "github.com/taibuivan/storyhub/internal/platform/sqlite"
)

// stores bundles the repositories of the selected driver.
type stores struct {
	stories    story.Repository
	categories category.Repository
	check      *api.Check
	close      func()
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("store_driver", cfg.StoreDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; stops background workers on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3 & 4. Migrations + Store ─────────────────────────────────────────
	store, err := openStores(startupCtx, cfg, log)
	must(log, err, "open story store")
	defer store.close()

	// ── 5. Optional Infrastructure ────────────────────────────────────────
	var (
		categoryCache category.Cache
		cacheCheck    *api.Check
	)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		categoryCache = category.NewRedisCache(rdb, cfg.CategoryCacheTTL, log)
		cacheCheck = &api.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}}
	} else {
		log.Info("category_cache_disabled")
	}

	var archiver story.Archiver
	if cfg.ArchiveEnabled() {
		client, err := objectstore.New(objectstore.Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		must(log, err, "configure object storage")
		archiver = client
		log.Info("upload_archive_enabled", slog.String("bucket", cfg.S3Bucket))
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	categoryService := category.NewService(store.categories, categoryCache, log)
	storyService := story.NewService(store.stories, log)

	if cfg.CategorySeedPath != "" {
		names, err := category.LoadSeed(cfg.CategorySeedPath)
		must(log, err, "load category seed")

		_, err = categoryService.Seed(startupCtx, names)
		must(log, err, "seed categories")
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness, healthcheck := api.NewHealthHandlers(api.HealthDependencies{
		Store: store.check,
		Cache: cacheCheck,
	}, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Healthcheck: healthcheck,
		Story:       story.NewHandler(storyService, archiver, cfg.MaxUploadBytes),
		Category:    category.NewHandler(categoryService),
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// openStores migrates and opens the repositories of the configured driver.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		// Open first: it creates the parent directory of the database file.
		db, err := sqlitestore.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}

		if err := migration.RunUp(migration.SQLite, cfg.SQLitePath, log); err != nil {
			_ = db.Close()
			return nil, err
		}

		return &stores{
			stories:    story.NewSQLiteRepository(db),
			categories: category.NewSQLiteRepository(db),
			check: &api.Check{Name: "sqlite", Ping: func(ctx context.Context) error {
				return sqlitestore.Ping(ctx, db)
			}},
			close: func() {
				log.Info("closing_sqlite_store")
				if err := db.Close(); err != nil {
					log.Error("sqlite_close_error", slog.Any("error", err))
				}
			},
		}, nil

	default:
		if err := migration.RunUp(migration.Postgres, cfg.DatabaseURL, log); err != nil {
			return nil, err
		}

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}

		return &stores{
			stories:    story.NewPostgresRepository(pool),
			categories: category.NewPostgresRepository(pool),
			check: &api.Check{Name: "postgres", Ping: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			}},
			close: func() {
				log.Info("closing_postgres_pool")
				pool.Close()
			},
		}, nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
