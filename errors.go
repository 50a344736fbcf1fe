package notifier

import (
	"errors"
	"fmt"
)

// Error represents a notifier library error with categorization.
type Error struct {
	// Code is a machine-readable error code
	Code string

	// Message is a human-readable error message
	Message string

	// Err is the underlying error (if any)
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error codes for registry and relay operations.
const (
	// ErrCodeNoData indicates no data was found.
	ErrCodeNoData = "NO_DATA"

	// ErrCodeAlreadyExists indicates a topic with the same owner and name
	// is already registered.
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// ErrCodeTokenConflict indicates a generated token collided with an
	// existing one. Callers retry with a fresh token.
	ErrCodeTokenConflict = "TOKEN_CONFLICT"

	// ErrCodeTokenExhausted indicates token generation retries were
	// exhausted. Observing this in practice points at a generator defect.
	ErrCodeTokenExhausted = "TOKEN_EXHAUSTED"

	// ErrCodeValidation indicates validation failed.
	ErrCodeValidation = "VALIDATION_ERROR"

	// ErrCodeConfiguration indicates invalid configuration.
	ErrCodeConfiguration = "CONFIGURATION_ERROR"

	// ErrCodeDatabase indicates database operation failed.
	ErrCodeDatabase = "DATABASE_ERROR"

	// ErrCodeDelivery indicates notification delivery to the messaging
	// platform failed.
	ErrCodeDelivery = "DELIVERY_ERROR"
)

// Common errors.
var (
	// ErrNoData is returned when a query returns no results.
	// This is not necessarily an error condition in all cases.
	ErrNoData = &Error{
		Code:    ErrCodeNoData,
		Message: "no data found",
	}

	// ErrTokenConflict is returned by TopicRepository.Insert when the
	// topic token already exists in the store.
	ErrTokenConflict = &Error{
		Code:    ErrCodeTokenConflict,
		Message: "topic token already exists",
	}
)

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithCause creates a new Error wrapping an underlying error.
func NewErrorWithCause(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// hasCode reports whether an error carries the given notifier error code.
func hasCode(err error, code string) bool {
	var notifierErr *Error
	if errors.As(err, &notifierErr) {
		return notifierErr.Code == code
	}
	return false
}

// IsNoData checks if an error is ErrNoData.
func IsNoData(err error) bool {
	return hasCode(err, ErrCodeNoData) || errors.Is(err, ErrNoData)
}

// IsAlreadyExists checks if an error carries ErrCodeAlreadyExists.
func IsAlreadyExists(err error) bool {
	return hasCode(err, ErrCodeAlreadyExists)
}

// IsTokenConflict checks if an error is a token collision.
func IsTokenConflict(err error) bool {
	return hasCode(err, ErrCodeTokenConflict) || errors.Is(err, ErrTokenConflict)
}

// IsTokenExhausted checks if an error carries ErrCodeTokenExhausted.
func IsTokenExhausted(err error) bool {
	return hasCode(err, ErrCodeTokenExhausted)
}

// IsDelivery checks if an error carries ErrCodeDelivery.
func IsDelivery(err error) bool {
	return hasCode(err, ErrCodeDelivery)
}
