// ABOUTME: Error types and handling for the Commonplace library
// ABOUTME: Provides structured errors with context for library operations

package commonplace

import (
	"context"
	"errors"
	"fmt"

	coreerrors "commonplace-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeBusy indicates the document already has an enhancement in progress
	ErrorTypeBusy ErrorType = "busy"

	// ErrorTypeStale indicates an enhancement was abandoned and its result discarded
	ErrorTypeStale ErrorType = "stale"

	// ErrorTypeTransformer indicates the transformer failed or timed out
	ErrorTypeTransformer ErrorType = "transformer"

	// ErrorTypeCancelled indicates the caller's context ended first
	ErrorTypeCancelled ErrorType = "cancelled"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common errors
var (
	// ErrClientClosed is returned when operations are attempted on a closed client
	ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

	// ErrNoBackgroundProcessing is returned by batch operations when the worker pool is off
	ErrNoBackgroundProcessing = NewError(ErrorTypeConfiguration, "background processing is disabled")
)

// wrapError converts an error from the core packages to a library error
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var libErr *Error
	if errors.As(err, &libErr) {
		return err
	}

	var errType ErrorType
	switch {
	case coreerrors.IsValidation(err):
		errType = ErrorTypeValidation
	case coreerrors.IsNotFound(err):
		errType = ErrorTypeNotFound
	case coreerrors.IsConflict(err):
		errType = ErrorTypeBusy
	case coreerrors.IsStaleResult(err):
		errType = ErrorTypeStale
	case coreerrors.IsExternalAPI(err):
		errType = ErrorTypeTransformer
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		errType = ErrorTypeCancelled
	default:
		errType = ErrorTypeInternal
	}
	return NewError(errType, err.Error()).WithCause(err)
}

func isType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsBusyError checks if an error reports a document already being enhanced
func IsBusyError(err error) bool {
	return isType(err, ErrorTypeBusy)
}

// IsStaleError checks if an error reports a discarded result
func IsStaleError(err error) bool {
	return isType(err, ErrorTypeStale)
}

// IsTransformerError checks if an error came from the transformer
func IsTransformerError(err error) bool {
	return isType(err, ErrorTypeTransformer)
}
