// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// Story and category names are shown in listings, logged, and turned into
// download filenames, so the rules here are about shape: present, bounded,
// and on one printable line. Content bodies are never validated.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/storyhub/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	// ErrInvalidForm is returned when a multipart body cannot be parsed.
	ErrInvalidForm = apperr.ValidationError("Invalid multipart form payload")
)

// Validator collects field-level errors. Only the first failure per field is
// kept. Not safe for concurrent use; create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the rune count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// SingleLine fails on invalid UTF-8 or any control character, line breaks
// and tabs included.
func (v *Validator) SingleLine(field, value string) *Validator {
	if !utf8.ValidString(value) {
		v.add(field, "Must be valid UTF-8")
		return v
	}
	if strings.ContainsFunc(value, unicode.IsControl) {
		v.add(field, "Must not contain control characters")
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] listing every failed
// field, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	for _, existing := range v.errs {
		if existing.Field == field {
			return
		}
	}
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
