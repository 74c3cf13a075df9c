// Package queue provides the blocking FIFO task queue shared by pool workers
package queue

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Push once the queue has been closed
var ErrClosed = errors.New("queue is closed")

// Queue is an unbounded FIFO guarded by a single mutex and condition variable.
// The closed flag lives under the same lock, so a Push either lands before
// Close and is drained, or is rejected.
type Queue[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// New creates an empty open queue
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends item at the tail and wakes one waiting consumer
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	q.items = append(q.items, item)
	q.cond.Signal()
	return nil
}

// Pop blocks until an item is available or the queue is closed and empty.
// draining reports that the item was taken after Close. ok is false only
// when there is no more work and the caller should exit.
func (q *Queue[T]) Pop() (item T, draining bool, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return item, true, false
	}

	item = q.items[0]
	var zero T
	q.items[0] = zero // drop reference for GC
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}

	return item, q.closed, true
}

// Close marks the queue closed and wakes every waiting consumer.
// It returns true only for the call that performed the transition.
func (q *Queue[T]) Close() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.closed = true
	q.cond.Broadcast()
	return true
}

// Len returns the number of pending items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
