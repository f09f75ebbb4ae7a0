// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every JSON response (Success or Error) across the entire application
// follows a strict, predictable envelope structure. File downloads go
// through [Attachment] so header handling lives in one place.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Text writes a plain-text response.
func Text(writer http.ResponseWriter, statusCode int, body string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write([]byte(body))
}

// # File Downloads

// File describes a downloadable artifact.
type File struct {
	// ASCIIName is the fallback filename for clients without RFC 5987 support.
	// It must already be free of quotes and control characters.
	ASCIIName string
	// Name is the preferred UTF-8 filename, sent percent-encoded.
	Name string
	// MediaType is the Content-Type of Body.
	MediaType string
	// ETag is an opaque strong validator for Body (unquoted).
	ETag string
	// Body is written verbatim.
	Body []byte
}

// Attachment writes file as a download. A request carrying a matching
// If-None-Match receives 304 with no body.
func Attachment(writer http.ResponseWriter, request *http.Request, file File) {
	header := writer.Header()

	quotedTag := ""
	if file.ETag != "" {
		quotedTag = strconv.Quote(file.ETag)
		header.Set("ETag", quotedTag)
	}

	if quotedTag != "" && request.Header.Get("If-None-Match") == quotedTag {
		writer.WriteHeader(http.StatusNotModified)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=%q", file.ASCIIName)
	if file.Name != "" && file.Name != file.ASCIIName {
		disposition += "; filename*=UTF-8''" + url.PathEscape(file.Name)
	}

	header.Set("Content-Disposition", disposition)
	header.Set("Content-Type", file.MediaType)
	header.Set("Content-Length", strconv.Itoa(len(file.Body)))
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(file.Body)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}
