// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error taxonomy shared by the store, service and
HTTP layers.

Every failure that reaches a handler is one of a handful of kinds, each with
a fixed HTTP status:

	NOT_FOUND            404  unknown story or category
	VALIDATION_ERROR     400  malformed ingestion input
	INVALID_ARGUMENT     400  unknown sort/counter field, bad limit
	PAYLOAD_TOO_LARGE    413  upload over the configured cap
	RATE_LIMITED         429  per-client token bucket exhausted
	STORAGE_UNAVAILABLE  503  store unreachable or update not applied
	INTERNAL_ERROR       500  anything unclassified

Cause is kept for server-side logs only and never serialized.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidArgument    = "INVALID_ARGUMENT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeNotFound:           http.StatusNotFound,
	CodeValidation:         http.StatusBadRequest,
	CodeInvalidArgument:    http.StatusBadRequest,
	CodeStorageUnavailable: http.StatusServiceUnavailable,
	CodePayloadTooLarge:    http.StatusRequestEntityTooLarge,
	CodeRateLimited:        http.StatusTooManyRequests,
	CodeInternal:           http.StatusInternalServerError,
}

// AppError is the canonical error type of the API.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(code, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: statusByCode[code],
		Cause:      cause,
	}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Story") -> "Story not found".
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found", nil)
}

// ValidationError reports rejected input with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(CodeValidation, msg, nil)
	err.Details = details
	return err
}

// InvalidArgument reports a selector or parameter the operation does not
// recognise, such as an unknown sort field.
func InvalidArgument(msg string) *AppError {
	return newError(CodeInvalidArgument, msg, nil)
}

// PayloadTooLarge reports a body over limitBytes.
func PayloadTooLarge(limitBytes int64) *AppError {
	return newError(CodePayloadTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limitBytes), nil)
}

// RateLimited reports an exhausted client budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds), nil)
}

// # Server Errors (5xx)

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return newError(CodeInternal, "An unexpected error occurred", cause)
}

// StorageUnavailable reports that the store could not be reached or an
// atomic update could not complete. Nothing was changed.
func StorageUnavailable(cause error) *AppError {
	return newError(CodeStorageUnavailable, "Storage is temporarily unavailable", cause)
}

// # Helpers

// IsAppError reports whether err's chain holds an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with code.
func HasCode(err error, code string) bool {
	appErr := As(err)
	return appErr != nil && appErr.Code == code
}
