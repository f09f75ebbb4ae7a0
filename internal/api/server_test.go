// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storyhub/internal/core/category"
	"github.com/taibuivan/storyhub/internal/core/story"
	"github.com/taibuivan/storyhub/internal/testutil"
)

type staticOrigins []string

func (o staticOrigins) Origins() []string { return o }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db := testutil.SQLite(t)
	logger := testutil.Logger()

	categoryService := category.NewService(category.NewSQLiteRepository(db), nil, logger)
	_, err := categoryService.Seed(ctx, []string{"Horror"})
	require.NoError(t, err)

	storyService := story.NewService(story.NewSQLiteRepository(db), logger)

	liveness, readiness, healthcheck := NewHealthHandlers(HealthDependencies{}, logger)
	return NewRouter(ctx, staticOrigins{"*"}, logger, Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Healthcheck: healthcheck,
		Story:       story.NewHandler(storyService, nil, 1<<20),
		Category:    category.NewHandler(categoryService),
	})
}

func TestRouter_EndToEnd(t *testing.T) {
	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(`{"category":"Horror","title":"The Well","content":"<p>x</p>"}`))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	for _, path := range []string{"/categories", "/categories/Horror", "/categories/Horror/stories", "/stories?search=well", "/rankings/views", "/health", "/healthcheck", "/ready"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	request := httptest.NewRequest(http.MethodOptions, "/stories", nil)
	request.Header.Set("Origin", "https://reader.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/authors", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
