// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that stops at the first
// failing rule and reports it as a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/recursos/internal/platform/apperr"
	"github.com/taibuivan/recursos/pkg/objectid"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("El cuerpo de la petición no es un JSON válido")
)

// Validator evaluates rules in order via a fluent, chainable API.
//
// Once a rule fails every later rule in the chain is skipped, so the
// resulting error always describes the first failing field.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	failure *apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if v.ok() && strings.TrimSpace(value) == "" {
		v.fail(field, fmt.Sprintf("\"%s\" es obligatorio", field))
	}
	return v
}

// RequiredInt fails if a numeric field was absent from the payload.
func (v *Validator) RequiredInt(field string, value *int) *Validator {
	if v.ok() && value == nil {
		v.fail(field, fmt.Sprintf("\"%s\" es obligatorio", field))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if v.ok() && utf8.RuneCountInString(value) > max {
		v.fail(field, fmt.Sprintf("\"%s\" debe tener como máximo %d caracteres", field, max))
	}
	return v
}

// Min fails if the value is below min.
func (v *Validator) Min(field string, value, min int) *Validator {
	if v.ok() && value < min {
		v.fail(field, fmt.Sprintf("\"%s\" debe ser mayor o igual que %d", field, min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if v.ok() && (value < min || value > max) {
		v.fail(field, fmt.Sprintf("\"%s\" debe estar entre %d y %d", field, min, max))
	}
	return v
}

// ObjectID fails if the value is not a 24-character hex identifier.
func (v *Validator) ObjectID(field, value string) *Validator {
	if v.ok() && !objectid.IsValid(value) {
		v.fail(field, fmt.Sprintf("\"%s\" no es un identificador válido", field))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("publicado", year > currentYear, "Año de publicación no válido")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if v.ok() && failed {
		v.fail(field, message)
	}
	return v
}

// Err returns a VALIDATION_ERROR [apperr.AppError] whose message is the first
// failing rule's description, or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if v.failure == nil {
		return nil
	}
	return apperr.ValidationError(v.failure.Message, *v.failure)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return v.failure != nil
}

func (v *Validator) ok() bool { return v.failure == nil }

func (v *Validator) fail(field, message string) {
	v.failure = &apperr.FieldError{Field: field, Message: message}
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(message, apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
