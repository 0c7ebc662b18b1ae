package reactive

import (
	"errors"
	"fmt"
)

// DefaultMaxReruns is the re-run limit of a single Flush.
const DefaultMaxReruns = 1000

// FlushError reports a flush that did not settle within its re-run limit,
// usually a computation that keeps invalidating itself.
type FlushError struct {
	// Seq is the clock value of the failed flush.
	Seq int64

	// Reruns is the number of re-runs performed before giving up.
	Reruns int

	// Limit is the configured maximum.
	Limit int

	// Computation is the ID of the computation that would have exceeded
	// the limit.
	Computation string
}

// Error implements the error interface.
func (e *FlushError) Error() string {
	return fmt.Sprintf("flush %d exceeded %d re-runs (computation=%s)", e.Seq, e.Limit, e.Computation)
}

// IsFlushError returns true if err is or wraps a FlushError.
func IsFlushError(err error) bool {
	var fe *FlushError
	return errors.As(err, &fe)
}
