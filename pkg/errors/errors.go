package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Generic user-facing messages for the two failure paths of a
// directory fetch. The API path surfaces the server's own message when
// one can be parsed out of the error envelope.
const (
	GenericAPIMessage       = "something went wrong, please try again"
	GenericTransportMessage = "could not reach the server, check your connection"
)

// APIError represents a completed request that the server rejected
// with a non-2xx status. Message carries the server's error-envelope
// message when it was parseable, or a generic fallback.
type APIError struct {
	StatusCode int
	Message    string
}

// NewAPIError creates an APIError, substituting the generic message
// when the envelope carried none.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = GenericAPIMessage
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// UserMessage returns the message suitable for direct display.
func (e *APIError) UserMessage() string {
	return e.Message
}

// TransportError represents a request that never completed, e.g. a
// connection failure. It is distinct from APIError so callers can show
// a connectivity message instead of a server one.
type TransportError struct {
	Err error
}

// NewTransportError wraps a transport-level failure.
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the wrapped error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the generic connectivity message.
func (e *TransportError) UserMessage() string {
	return GenericTransportMessage
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// HTTPStatuser is implemented by errors that map to an HTTP status.
type HTTPStatuser interface {
	HTTPStatus() int
}

// UserMessage reduces any error to a message fit for a notification.
// API and transport errors carry their own; everything else collapses
// to the generic API message.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.UserMessage()
	}
	return GenericAPIMessage
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
