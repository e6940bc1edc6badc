package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport marks failures to reach a remote endpoint at all.
	ErrTransport = errors.New("transport failure")
	// ErrStatus marks a response with a non-success HTTP status.
	ErrStatus = errors.New("unexpected response status")
	// ErrMalformedResponse marks a response body that does not match the
	// expected schema.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
)

// StatusError carries the status of a non-success response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: %s", ErrStatus, e.Status)
	}
	return fmt.Sprintf("%s: %d", ErrStatus, e.Code)
}

// Is makes StatusError match ErrStatus, and ErrNotFound for 404s.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return true
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	default:
		return false
	}
}

// ValidationError is a client-side validation failure. Its message is safe
// to show to the user.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
