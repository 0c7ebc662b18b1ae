package reactive

import (
	"context"
	"log/slog"
)

// Tracker records which computations read which dependencies and re-runs
// invalidated computations on Flush.
//
// A Tracker is owned by one goroutine. Only Enqueue and Stop may be called
// from other goroutines.
type Tracker struct {
	logger    *slog.Logger
	clock     Clock
	ids       IDGenerator
	maxReruns int

	current  *Computation
	pending  []*Computation // invalidated computations in invalidation order
	flushing bool

	queue *opQueue
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = l
	}
}

// WithMaxReruns sets the re-run limit of a single Flush.
// Values below 1 select DefaultMaxReruns.
func WithMaxReruns(n int) Option {
	return func(t *Tracker) {
		t.maxReruns = n
	}
}

// WithClock sets the clock that stamps flushes.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithIDGenerator sets the computation ID generator.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(t *Tracker) {
		t.ids = g
	}
}

// New creates a Tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		logger:    slog.Default(),
		clock:     NewClock(),
		ids:       UUIDv7Generator{},
		maxReruns: DefaultMaxReruns,
		queue:     newOpQueue(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxReruns <= 0 {
		t.maxReruns = DefaultMaxReruns
	}
	return t
}

// NewDependency creates a dependency tracked by t.
// The concrete type is *Dep.
func (t *Tracker) NewDependency() Dependency {
	return &Dep{tracker: t}
}

// Autorun runs fn immediately as a new computation and re-runs it on every
// Flush after a dependency it read has changed.
func (t *Tracker) Autorun(fn func(*Computation)) *Computation {
	c := &Computation{
		ID:      t.ids.Generate(),
		tracker: t,
		fn:      fn,
	}
	c.run(t.clock.Current())
	return c
}

// Nonreactive runs fn with no current computation, so its reads are not
// recorded.
func (t *Tracker) Nonreactive(fn func()) {
	prev := t.current
	t.current = nil
	defer func() { t.current = prev }()
	fn()
}

// Active reports whether a computation is running.
func (t *Tracker) Active() bool {
	return t.current != nil
}

// Current returns the running computation, or nil.
func (t *Tracker) Current() *Computation {
	return t.current
}

// Pending returns the number of computations waiting to re-run.
func (t *Tracker) Pending() int {
	return len(t.pending)
}

// Clock returns the tracker's clock.
func (t *Tracker) Clock() Clock {
	return t.clock
}

// Flush re-runs invalidated computations in invalidation order until none
// is left. Computations invalidated during the flush run in the same flush.
// A Flush called from inside a computation does nothing.
//
// Returns a *FlushError, and drops every pending re-run, if the flush
// exceeds its re-run limit.
func (t *Tracker) Flush() error {
	if t.flushing || t.current != nil {
		return nil
	}
	if len(t.pending) == 0 {
		return nil
	}

	t.flushing = true
	defer func() { t.flushing = false }()

	seq := t.clock.Next()
	reruns := 0
	for len(t.pending) > 0 {
		c := t.pending[0]
		t.pending[0] = nil
		t.pending = t.pending[1:]

		if c.stopped || !c.invalidated {
			continue
		}
		if reruns >= t.maxReruns {
			t.abandon(c)
			err := &FlushError{Seq: seq, Reruns: reruns, Limit: t.maxReruns, Computation: c.ID}
			t.logger.Error("flush did not settle",
				"seq", seq,
				"reruns", reruns,
				"computation", c.ID,
			)
			return err
		}

		reruns++
		c.run(seq)
	}

	t.pending = nil
	t.logger.Debug("flush", "seq", seq, "reruns", reruns)
	return nil
}

// abandon clears the invalidated flag of c and every pending computation so
// that later changes can schedule them again.
func (t *Tracker) abandon(c *Computation) {
	c.invalidated = false
	for _, p := range t.pending {
		p.invalidated = false
	}
	t.pending = nil
}

// Enqueue submits op to the Run loop.
// Safe for concurrent use. Returns false after Stop.
func (t *Tracker) Enqueue(op func()) bool {
	return t.queue.Enqueue(op)
}

// Run executes enqueued operations one at a time, each followed by a
// Flush. Blocks until ctx is cancelled or Stop is called; operations
// enqueued before Stop still run.
//
// Must be called from exactly one goroutine, which then owns the tracker.
// A failed flush is logged and the loop continues.
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Debug("tracker loop starting")

	for {
		if op, ok := t.queue.TryDequeue(); ok {
			op()
			if err := t.Flush(); err != nil {
				t.logger.Error("flush failed", "error", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
			t.logger.Debug("tracker loop stopping: context cancelled")
			t.queue.Close()
			return ctx.Err()
		case <-t.queue.Wait():
			// A stale signal on an open queue just loops back.
			if t.queue.Len() == 0 && t.queue.Closed() {
				t.logger.Debug("tracker loop stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the operation queue. Run returns once it has drained it.
func (t *Tracker) Stop() {
	t.queue.Close()
}
