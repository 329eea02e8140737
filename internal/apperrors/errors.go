// Package apperrors defines the error kinds surfaced by the API and their HTTP mapping.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code is a machine-readable error code returned in error envelopes.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// ErrNotFound marks a missing configuration key or resource.
var ErrNotFound = errors.New("not found")

// ErrReferenceTaken is returned by stores when a reference code is already allocated.
var ErrReferenceTaken = errors.New("reference already taken")

// NotFound wraps ErrNotFound with the name of what is missing.
func NotFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError reports caller-supplied data that violates field constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// PersistenceError wraps a store failure. Its message never reaches callers.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

// Unwrap returns the underlying store error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it is nil or already classified.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var pe *PersistenceError
	if errors.As(err, &ve) || errors.As(err, &pe) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// HTTPStatus maps err onto a response status.
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf maps err onto its envelope code.
func CodeOf(err error) Code {
	switch HTTPStatus(err) {
	case http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsClientError reports whether err was caused by the caller rather than the service.
func IsClientError(err error) bool {
	s := HTTPStatus(err)
	return s >= 400 && s < 500
}
