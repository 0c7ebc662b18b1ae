package reactive

import "sync"

// opQueue is a thread-safe unbounded FIFO of operations for the Run loop.
//
// The signal channel (buffered, size 1) lets Run wait for work together
// with context cancellation. Close closes it, waking the loop.
type opQueue struct {
	mu     sync.Mutex
	ops    []func()
	closed bool
	signal chan struct{}
}

func newOpQueue() *opQueue {
	return &opQueue{
		ops:    make([]func(), 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends op. Returns false if the queue is closed.
func (q *opQueue) Enqueue(op func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.ops = append(q.ops, op)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes the front operation without blocking.
func (q *opQueue) TryDequeue() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.ops) == 0 {
		return nil, false
	}
	op := q.ops[0]
	// Release the closure for GC.
	q.ops[0] = nil
	if len(q.ops) == 1 {
		q.ops = q.ops[:0]
	} else {
		q.ops = q.ops[1:]
	}
	return op, true
}

// Wait returns a channel that signals when operations may be available.
func (q *opQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued operations.
func (q *opQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Closed reports whether Close was called.
func (q *opQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close rejects further operations and wakes the loop.
func (q *opQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
