package testutil

import (
	"strconv"
	"sync"

	"github.com/roach88/sortspec/internal/reactive"
)

// RecordingDependency counts Depend and Changed calls.
type RecordingDependency struct {
	// Name is assigned by RecordingSource in creation order.
	Name string

	mu      sync.Mutex
	depends int
	changes int
}

// Depend records a read.
func (d *RecordingDependency) Depend() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depends++
}

// Changed records a notification.
func (d *RecordingDependency) Changed() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.changes++
}

// Depends returns the number of Depend calls.
func (d *RecordingDependency) Depends() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.depends
}

// Changes returns the number of Changed calls.
func (d *RecordingDependency) Changes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.changes
}

// Reset zeroes both counters.
func (d *RecordingDependency) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depends, d.changes = 0, 0
}

// RecordingSource is a reactive.Source handing out RecordingDependency
// values named "dep-0", "dep-1", ... in creation order.
type RecordingSource struct {
	mu   sync.Mutex
	deps []*RecordingDependency
}

var _ reactive.Source = (*RecordingSource)(nil)

// NewDependency implements reactive.Source.
func (s *RecordingSource) NewDependency() reactive.Dependency {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := &RecordingDependency{Name: depName(len(s.deps))}
	s.deps = append(s.deps, d)
	return d
}

// All returns the created dependencies in creation order.
func (s *RecordingSource) All() []*RecordingDependency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*RecordingDependency(nil), s.deps...)
}

// Changed returns the dependencies notified at least once since the last
// Reset, in creation order.
func (s *RecordingSource) Changed() []*RecordingDependency {
	var out []*RecordingDependency
	for _, d := range s.All() {
		if d.Changes() > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Reset zeroes the counters of every dependency.
func (s *RecordingSource) Reset() {
	for _, d := range s.All() {
		d.Reset()
	}
}

func depName(i int) string {
	return "dep-" + strconv.Itoa(i)
}
