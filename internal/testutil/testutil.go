// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package testutil provisions real, migrated stores for tests.

  - [SQLite]: a temp-dir database file, always available.
  - [Postgres] / [Redis]: disposable containers via testcontainers-go. These
    skip under -short or when no container provider is reachable.
*/
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/storyhub/internal/platform/migration"
	"github.com/taibuivan/storyhub/internal/platform/postgres"
	"github.com/taibuivan/storyhub/internal/platform/redis"
	"github.com/taibuivan/storyhub/internal/platform/sqlite"
)

const containerStartupTimeout = 60 * time.Second

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SQLite opens a freshly migrated SQLite database in a temp dir.
func SQLite(t *testing.T) *sql.DB {
	t.Helper()

	logger := Logger()
	path := filepath.Join(t.TempDir(), "stories.db")

	if err := migration.RunUp(migration.SQLite, path, logger); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}

	db, err := sqlite.Open(context.Background(), path, logger)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// Postgres starts a PostgreSQL container, migrates it and returns a pool.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipWithoutContainers(t)

	ctx := context.Background()
	logger := Logger()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storyhub"),
		tcpostgres.WithUsername("storyhub"),
		tcpostgres.WithPassword("storyhub"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(containerStartupTimeout),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = tc.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := migration.RunUp(migration.Postgres, dsn, logger); err != nil {
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("failed to create postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// Redis starts a Redis container and returns a connected client.
func Redis(t *testing.T) *goredis.Client {
	t.Helper()
	skipWithoutContainers(t)

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() { _ = tc.TerminateContainer(container) })

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	client, err := redis.NewClient(ctx, uri, Logger())
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func skipWithoutContainers(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tc.SkipIfProviderIsNotHealthy(t)
}
