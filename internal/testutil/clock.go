// Package testutil provides deterministic fakes for reactive tests.
package testutil

import (
	"sync"

	"github.com/roach88/sortspec/internal/reactive"
)

var _ reactive.Clock = (*DeterministicClock)(nil)

// DeterministicClock is a resettable reactive.Clock.
//
// Unlike reactive.LogicalClock it can be rewound, so one scenario can run
// several times with identical flush sequence numbers. Safe for concurrent
// use.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock creates a clock at 0. The first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next advances the clock by one.
func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the clock value.
func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to 0.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
