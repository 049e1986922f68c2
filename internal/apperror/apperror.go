package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrStore      = errors.New("store error")
)

type AppError struct {
	Err     error  // sentinel cause
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Store wraps a failed remote store operation. Handlers map this to 502 on
// writes; listing reads degrade to an empty result with a "could not load"
// message instead.
func Store(op string, err error) *AppError {
	return &AppError{
		Err:     ErrStore,
		Message: fmt.Sprintf("store operation %s failed: %v", op, err),
	}
}

// InvalidRating reports a rating value outside the 1-5 range.
func InvalidRating(value int) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("rating must be an integer between 1 and 5, got %d", value),
		Field:   "rating",
	}
}
