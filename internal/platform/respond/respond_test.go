// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	OK(recorder, map[string]int{"views": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"views":3}}`, recorder.Body.String())
}

func TestError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Story"), http.StatusNotFound, apperr.CodeNotFound},
		{"invalid_argument", apperr.InvalidArgument("sort"), http.StatusBadRequest, apperr.CodeInvalidArgument},
		{"storage", apperr.StorageUnavailable(errors.New("down")), http.StatusServiceUnavailable, apperr.CodeStorageUnavailable},
		{"plain_error", errors.New("secret dsn"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "secret")
		})
	}
}

func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	Error(recorder, httptest.NewRequest(http.MethodPost, "/", nil),
		apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "This field is required"}))

	var body ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "title", body.Details[0].Field)
}

func TestAttachment(t *testing.T) {
	file := File{
		ASCIIName: "nuit.html",
		Name:      "Nuit étoilée.html",
		MediaType: "text/html; charset=utf-8",
		ETag:      "abc123",
		Body:      []byte("<p>hi</p>"),
	}

	recorder := httptest.NewRecorder()
	Attachment(recorder, httptest.NewRequest(http.MethodGet, "/", nil), file)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "<p>hi</p>", recorder.Body.String())
	assert.Equal(t, `"abc123"`, recorder.Header().Get("ETag"))
	assert.Equal(t, "9", recorder.Header().Get("Content-Length"))
	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t,
		`attachment; filename="nuit.html"; filename*=UTF-8''Nuit%20%C3%A9toil%C3%A9e.html`,
		recorder.Header().Get("Content-Disposition"),
	)
}

func TestAttachment_ASCIIOnlyAndNotModified(t *testing.T) {
	file := File{ASCIIName: "a.html", Name: "a.html", MediaType: "text/html", ETag: "v1", Body: []byte("x")}

	recorder := httptest.NewRecorder()
	Attachment(recorder, httptest.NewRequest(http.MethodGet, "/", nil), file)
	assert.Equal(t, `attachment; filename="a.html"`, recorder.Header().Get("Content-Disposition"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("If-None-Match", `"v1"`)
	recorder = httptest.NewRecorder()
	Attachment(recorder, request, file)
	assert.Equal(t, http.StatusNotModified, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())
}

func TestText(t *testing.T) {
	recorder := httptest.NewRecorder()
	Text(recorder, http.StatusOK, "Server is up and running")

	assert.Equal(t, "Server is up and running", recorder.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
}
