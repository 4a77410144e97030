package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidRequest indicates the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized indicates the credentials were rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServerError indicates a server-side error
	ErrServerError = errors.New("server error")

	// ErrTimeout indicates the request timed out
	ErrTimeout = errors.New("request timed out")

	// ErrMalformedResponse indicates the body could not be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError represents a non-2xx response from a remote endpoint
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
	Message    string // server-supplied message, when there is one
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error %d: %s (endpoint: %s)", e.StatusCode, e.Status, e.Endpoint)
}

// Is implements errors.Is for APIError
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrServerError:
		return e.StatusCode >= 500
	case ErrInvalidRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}

// NewAPIErrorWithMessage creates a new API error with a server message
func NewAPIErrorWithMessage(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ValidationError represents a validation error for request parameters
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Is lets callers match validation failures with ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ErrMissingField reports a required field left empty
func ErrMissingField(field string) error {
	return NewValidationError(field, "field is required")
}
