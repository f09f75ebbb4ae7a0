// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Story", "find"))

	assert.True(t, apperr.HasCode(Wrap(pgx.ErrNoRows, "Story", "find"), apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(Wrap(fmt.Errorf("scan: %w", sql.ErrNoRows), "Story", "find"), apperr.CodeNotFound))

	cause := errors.New("connection reset by peer")
	wrapped := Wrap(cause, "Story", "update_story_counter")
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeStorageUnavailable))
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, apperr.As(wrapped).Cause.Error(), "update_story_counter")
}

func TestWrap_PassesAppErrorsThrough(t *testing.T) {
	original := apperr.InvalidArgument("bad field")
	assert.Same(t, original, Wrap(original, "Story", "any"))
}
