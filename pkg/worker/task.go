// Package worker provides the fixed-size thread pool implementation
package worker

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// taskIDCounter is the global task ID counter
var taskIDCounter int64

func nextTaskID() string {
	return fmt.Sprintf("task-%d", atomic.AddInt64(&taskIDCounter, 1))
}

// BasicTask is the basic implementation of Task interface
type BasicTask struct {
	id string
	fn func() error
}

// NewBasicTask creates a new basic task
func NewBasicTask(fn func() error) *BasicTask {
	return &BasicTask{
		id: nextTaskID(),
		fn: fn,
	}
}

// NewBasicTaskWithID creates a basic task with custom ID
func NewBasicTaskWithID(id string, fn func() error) *BasicTask {
	return &BasicTask{
		id: id,
		fn: fn,
	}
}

// Execute executes the task
func (t *BasicTask) Execute() error {
	if t.fn == nil {
		return fmt.Errorf("task %s has no execution function", t.id)
	}
	return t.fn()
}

// ID returns the task ID
func (t *BasicTask) ID() string {
	return t.id
}

// futureTask runs a typed computation and writes its outcome into a Future
type futureTask[T any] struct {
	id     string
	fn     func() (T, error)
	future *Future[T]
	clock  types.Clock
}

func newFutureTask[T any](fn func() (T, error), clock types.Clock) *futureTask[T] {
	id := nextTaskID()
	return &futureTask[T]{
		id:     id,
		fn:     fn,
		future: newFuture[T](id),
		clock:  clock,
	}
}

func (t *futureTask[T]) ID() string {
	return t.id
}

// Execute runs the computation. A panic is recovered here rather than in the
// worker so the Future is always completed.
func (t *futureTask[T]) Execute() (err error) {
	var value T
	start := t.clock.Now()

	defer func() {
		if r := recover(); r != nil {
			err = types.NewPanicError(t.id, r, debug.Stack())
		}
		if err != nil {
			var zero T
			value = zero
		}
		t.future.complete(value, err, t.clock.Since(start))
	}()

	value, err = t.fn()
	if err != nil {
		err = types.NewTaskError(t.id, err)
	}
	return err
}
