package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error that knows which HTTP status and machine code it
// maps to. Handlers render it through the response envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error carrying the same code, so a clone with a custom
// message still satisfies errors.Is against its sentinel.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if e == nil || !ok || other == nil {
		return false
	}
	return e.Code == other.Code
}

// New creates a sentinel.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a cause to a new error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Generic failures.
var (
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss       = New("CACHE_MISS", http.StatusNotFound, "cache miss")
	ErrFeatureDisabled = New("FEATURE_DISABLED", http.StatusNotFound, "feature disabled")
)

// Planner rule violations.
var (
	ErrPeriodCapacity       = New("PERIOD_CAPACITY", http.StatusConflict, "maximum number of periods reached")
	ErrLastPeriod           = New("LAST_PERIOD", http.StatusConflict, "at least one period must remain")
	ErrSubjectScheduled     = New("SUBJECT_ALREADY_SCHEDULED", http.StatusConflict, "subject already scheduled")
	ErrConfirmationRequired = New("CONFIRMATION_REQUIRED", http.StatusPreconditionRequired, "destructive operation requires confirmation")
	ErrMalformedSnapshot    = New("MALFORMED_SNAPSHOT", http.StatusBadRequest, "snapshot could not be parsed")
	ErrEmptyCatalog         = New("EMPTY_CATALOG", http.StatusBadRequest, "catalog file has no usable rows")
)

// FromError returns the first *Error in err's chain, or wraps err as an
// internal error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone copies a sentinel, replacing the message when one is given.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
