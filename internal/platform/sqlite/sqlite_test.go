// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFileInNestedDir(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "nested", "stories.db")

	db, err := Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestCasefold_Unicode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "fold.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var folded string
	require.NoError(t, db.QueryRow("SELECT casefold(?)", "ÉCOLE Tales").Scan(&folded))
	assert.Equal(t, "école tales", folded)

	var null sql.NullString
	require.NoError(t, db.QueryRow("SELECT casefold(NULL)").Scan(&null))
	assert.False(t, null.Valid)
}
