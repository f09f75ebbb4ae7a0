// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite store used for single-node
// deployments and tests.
//
// # Concurrency
//
// SQLite allows one writer at a time. The handle is capped at a single open
// connection so concurrent callers queue inside database/sql instead of
// failing with SQLITE_BUSY. Each counter update is still one atomic
// UPDATE ... RETURNING statement executed by the engine.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" database/sql driver.
	msqlite "modernc.org/sqlite"
)

const (
	driverName    = "sqlite"
	busyTimeoutMs = 10_000
	pingTimeout   = 2 * time.Second
)

func init() {
	msqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefold)
}

// casefold lowercases its single text argument. NULL stays NULL.
func casefold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch value := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(value), nil
	case []byte:
		return strings.ToLower(string(value)), nil
	default:
		return nil, fmt.Errorf("casefold: unsupported argument type %T", value)
	}
}

// pragmas are applied once on the single pooled connection.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMs),
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// Open opens (creating if needed) the database file at path.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite_store_opened", slog.String("path", path))
	return db, nil
}

// Ping verifies that the database handle is usable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}
