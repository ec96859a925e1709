// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidInput indicates a calculation input outside its domain
	TypeInvalidInput Type = "INVALID_INPUT"

	// TypeInvalidQuantity indicates a non-positive quote quantity
	TypeInvalidQuantity Type = "INVALID_QUANTITY"

	// TypeUnknownKey indicates a support type or SLA level missing from the catalog
	TypeUnknownKey Type = "UNKNOWN_KEY"

	// TypeUnknownService indicates a service id missing from the catalog
	TypeUnknownService Type = "UNKNOWN_SERVICE"

	// TypeConfig indicates a configuration or catalog error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Sentinels for errors.Is matching. Only the Type is compared.
var (
	ErrInvalidInput    = New(TypeInvalidInput, "invalid input")
	ErrInvalidQuantity = New(TypeInvalidQuantity, "invalid quantity")
	ErrUnknownKey      = New(TypeUnknownKey, "unknown key")
	ErrUnknownService  = New(TypeUnknownService, "unknown service")
	ErrConfig          = New(TypeConfig, "configuration error")
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// TypeOf returns the Type of the first *Error in err's chain, or TypeInternal.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// InvalidInput creates an input validation error
func InvalidInput(format string, args ...interface{}) *Error {
	return Newf(TypeInvalidInput, format, args...)
}

// InvalidQuantity creates an error for a quote line with a bad quantity
func InvalidQuantity(serviceID string, quantity int) *Error {
	return Newf(TypeInvalidQuantity, "quantity for %q must be a positive integer, got %d", serviceID, quantity).
		WithContext("service_id", serviceID).
		WithContext("quantity", quantity)
}

// UnknownKey creates an error for a lookup key missing from a catalog table
func UnknownKey(table, key string) *Error {
	return Newf(TypeUnknownKey, "unknown %s: %q", table, key).
		WithContext("table", table).
		WithContext("key", key)
}

// UnknownService creates an error for a service id missing from the catalog
func UnknownService(serviceID string) *Error {
	return Newf(TypeUnknownService, "unknown service: %q", serviceID).
		WithContext("service_id", serviceID)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}
