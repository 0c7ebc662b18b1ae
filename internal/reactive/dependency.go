package reactive

import "slices"

// Dependency is a single reactive fact.
//
// Depend registers a read of the fact by the current computation, if any.
// Changed schedules every computation that read the fact to re-run. It
// must not re-run anything synchronously.
type Dependency interface {
	Depend()
	Changed()
}

// Source creates dependencies.
type Source interface {
	NewDependency() Dependency
}

// Nop is a Source whose dependencies do nothing. It is the default for
// specifiers used outside any reactive context.
var Nop Source = nopSource{}

type nopSource struct{}

func (nopSource) NewDependency() Dependency { return nopDependency{} }

type nopDependency struct{}

func (nopDependency) Depend()  {}
func (nopDependency) Changed() {}

// Dep is a Dependency owned by a Tracker.
type Dep struct {
	tracker *Tracker

	// dependents in registration order; Changed invalidates in this order.
	dependents []*Computation
}

// Depend registers the tracker's running computation as a dependent.
func (d *Dep) Depend() {
	c := d.tracker.current
	if c == nil || c.stopped {
		return
	}
	for _, existing := range d.dependents {
		if existing == c {
			return
		}
	}
	d.dependents = append(d.dependents, c)
	c.deps = append(c.deps, d)
}

// Changed invalidates every dependent computation.
func (d *Dep) Changed() {
	// Invalidate does not touch d.dependents; the slice is only rewritten
	// when a computation re-runs or stops.
	for _, c := range d.dependents {
		c.Invalidate()
	}
}

// HasDependents reports whether any computation currently depends on d.
func (d *Dep) HasDependents() bool {
	return len(d.dependents) > 0
}

func (d *Dep) remove(c *Computation) {
	for i, existing := range d.dependents {
		if existing == c {
			d.dependents = slices.Delete(d.dependents, i, i+1)
			return
		}
	}
}
