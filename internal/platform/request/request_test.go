// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

func TestIntQuery(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/?limit=7&bad=x", nil)

	value, err := IntQuery(request, "limit", 5)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	value, err = IntQuery(request, "missing", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, value)

	_, err = IntQuery(request, "bad", 5)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidArgument))
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Title string `json:"title"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Ode"}`))
	require.NoError(t, DecodeJSON(request, &target))
	assert.Equal(t, "Ode", target.Title)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":`))
	assert.True(t, apperr.HasCode(DecodeJSON(request, &target), apperr.CodeValidation))
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	var target map[string]string

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"`+strings.Repeat("x", 64)+`"}`))
	request.Body = http.MaxBytesReader(recorder, request.Body, 16)

	assert.True(t, apperr.HasCode(DecodeJSON(request, &target), apperr.CodePayloadTooLarge))
}

func TestParam_DecodesEscapedSegments(t *testing.T) {
	var got string
	router := chi.NewRouter()
	router.Get("/by-title/{title}", func(_ http.ResponseWriter, request *http.Request) {
		got = Param(request, "title")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/by-title/a%2Fb%20c", nil))
	assert.Equal(t, "a/b c", got)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/by-title/100%25%20sure", nil))
	assert.Equal(t, "100% sure", got)
}
