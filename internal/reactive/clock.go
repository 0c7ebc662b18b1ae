package reactive

import "sync/atomic"

// Clock stamps flushes with a strictly increasing sequence number.
type Clock interface {
	Next() int64
	Current() int64
}

// LogicalClock is a monotonic logical clock. Safe for concurrent use.
type LogicalClock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0. The first Next returns 1.
func NewClock() *LogicalClock {
	return &LogicalClock{}
}

// Next increments the clock and returns the new value.
func (c *LogicalClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current value without incrementing.
func (c *LogicalClock) Current() int64 {
	return c.seq.Load()
}
