package reactive

// Computation is a function the tracker re-runs when a dependency it read
// during its last run changes.
type Computation struct {
	// ID identifies the computation in logs.
	ID string

	tracker     *Tracker
	fn          func(*Computation)
	deps        []*Dep
	invalidated bool
	stopped     bool
	runs        int
	lastSeq     int64
}

// Invalidate schedules c to re-run on the next Flush.
// Invalidating an invalidated or stopped computation does nothing.
func (c *Computation) Invalidate() {
	if c.invalidated || c.stopped {
		return
	}
	c.invalidated = true
	c.tracker.pending = append(c.tracker.pending, c)
}

// Stop drops c's dependencies. A stopped computation never re-runs.
func (c *Computation) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.clearDeps()
}

// Stopped reports whether Stop was called.
func (c *Computation) Stopped() bool { return c.stopped }

// Invalidated reports whether c is waiting to re-run.
func (c *Computation) Invalidated() bool { return c.invalidated }

// FirstRun reports whether the current run is the initial one.
func (c *Computation) FirstRun() bool { return c.runs == 1 }

// Runs returns how many times c has run, the initial run included.
func (c *Computation) Runs() int { return c.runs }

// LastSeq returns the flush sequence number of c's latest run. The
// initial run inside Autorun carries the sequence of the last flush.
func (c *Computation) LastSeq() int64 { return c.lastSeq }

// run executes fn as the tracker's current computation. Dependencies from
// the previous run are dropped first so only reads of this run count.
func (c *Computation) run(seq int64) {
	c.clearDeps()
	c.invalidated = false
	c.runs++
	c.lastSeq = seq

	t := c.tracker
	prev := t.current
	t.current = c
	defer func() { t.current = prev }()

	c.fn(c)
}

func (c *Computation) clearDeps() {
	for _, d := range c.deps {
		d.remove(c)
	}
	c.deps = nil
}
