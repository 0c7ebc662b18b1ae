package order

import (
	"errors"
	"fmt"
)

// SpecifierError reports a value that cannot be normalized into an Order.
type SpecifierError struct {
	// Index is the position of the offending element in a sequence input,
	// or -1 when the error concerns the value as a whole.
	Index int

	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *SpecifierError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid sort specifier at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("invalid sort specifier: %s", e.Reason)
}

// IsSpecifierError returns true if err is or wraps a SpecifierError.
func IsSpecifierError(err error) bool {
	var se *SpecifierError
	return errors.As(err, &se)
}

func invalid(format string, args ...any) *SpecifierError {
	return &SpecifierError{Index: -1, Reason: fmt.Sprintf(format, args...)}
}

// withIndex attaches a sequence index to a whole-value SpecifierError.
func withIndex(err error, i int) error {
	var se *SpecifierError
	if errors.As(err, &se) && se.Index < 0 {
		return &SpecifierError{Index: i, Reason: se.Reason}
	}
	return err
}
