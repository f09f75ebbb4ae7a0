// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
	"github.com/taibuivan/storyhub/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: PayloadTooLarge when the body was capped by [http.MaxBytesReader],
    validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		if tooLarge := AsTooLarge(err); tooLarge != nil {
			return tooLarge
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request, percent-decoded.

chi matches on the raw path when the request carries encoded reserved
characters (e.g. %2F), in which case the captured value is still escaped.
*/
func Param(request *http.Request, name string) string {
	value := chi.URLParam(request, name)
	if request.URL.RawPath == "" {
		return value
	}

	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

/*
IntQuery parses an integer query parameter, returning def when the parameter
is absent.

Returns:
  - int: The parsed value or def
  - error: apperr.InvalidArgument if present but not an integer
*/
func IntQuery(request *http.Request, name string, def int) (int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidArgument("Query parameter '" + name + "' must be an integer")
	}

	return value, nil
}

/*
AsTooLarge converts the error produced by an exhausted [http.MaxBytesReader]
into a 413 [apperr.AppError]. It returns nil for any other error.
*/
func AsTooLarge(err error) *apperr.AppError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperr.PayloadTooLarge(maxBytesErr.Limit)
	}
	return nil
}
