package specifier

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes specifier errors.
type ErrorCode string

const (
	// ErrCodeInvalidOptions indicates malformed construction options.
	ErrCodeInvalidOptions ErrorCode = "INVALID_OPTIONS"

	// ErrCodeInvalidArgument indicates a call with missing arguments, an
	// unknown field, or a direction the field does not support.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeInvalidSortSpecifier indicates a value that cannot be
	// normalized into a sort order.
	ErrCodeInvalidSortSpecifier ErrorCode = "INVALID_SORT_SPECIFIER"
)

// Error is returned by every SortSpecifier operation that fails.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field is the field name involved, if any.
	Field string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidOptions returns true if err is or wraps an INVALID_OPTIONS error.
func IsInvalidOptions(err error) bool {
	return hasCode(err, ErrCodeInvalidOptions)
}

// IsInvalidArgument returns true if err is or wraps an INVALID_ARGUMENT error.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrCodeInvalidArgument)
}

// IsInvalidSortSpecifier returns true if err is or wraps an
// INVALID_SORT_SPECIFIER error.
func IsInvalidSortSpecifier(err error) bool {
	return hasCode(err, ErrCodeInvalidSortSpecifier)
}

// CodeOf returns the code of a specifier error, or "" for other errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func invalidArgument(field, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...), Field: field}
}
