package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource (or a referenced parent) was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, including self-parenting and cycles
	ValidationError struct {
		Message string
	}

	// ConflictError represents a resource conflict
	ConflictError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *ConflictError) Error() string   { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }
func (e *ConflictError) StatusCode() int   { return http.StatusConflict }

// Is lets errors.Is() match the typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *ConflictError) Is(target error) bool   { return target == ErrConflict }

// NotFound builds a NotFoundError
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// Invalid builds a ValidationError
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
