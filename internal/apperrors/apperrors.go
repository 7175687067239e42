// Package apperrors defines the error taxonomy shared by the storage,
// intake and moderation layers. Handlers map these onto HTTP statuses.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups of unknown ids. Surfaced as a generic
	// 404 response.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks a status transition attempted from a
	// non-eligible state. The record is left untouched.
	ErrInvalidState = errors.New("invalid state transition")

	// ErrScoringUnavailable marks a scoring-service timeout or failure.
	// Never surfaced to submitters; the application simply keeps a null
	// score.
	ErrScoringUnavailable = errors.New("scoring unavailable")
)

// ValidationError reports the first violated field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for one field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
