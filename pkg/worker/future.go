package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// Future is the handle for the eventual outcome of one submitted computation.
// It is written exactly once by the worker that executed the computation.
type Future[T any] struct {
	id   string
	done chan struct{}
	once sync.Once

	value    T
	err      error
	duration time.Duration
}

func newFuture[T any](id string) *Future[T] {
	return &Future[T]{
		id:   id,
		done: make(chan struct{}),
	}
}

// complete stores the outcome and releases readers. Later calls are ignored.
func (f *Future[T]) complete(value T, err error, d time.Duration) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		f.duration = d
		close(f.done)
	})
}

// ID returns the ID of the task backing this future
func (f *Future[T]) ID() string {
	return f.id
}

// Done returns a channel closed once the outcome is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the computation finishes and returns its value or failure.
// A failure is a *types.TaskError wrapping what the computation returned
// or the value it panicked with.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// GetContext is like Get but stops waiting when ctx is done. The computation
// itself is not cancelled and will still run to completion.
func (f *Future[T]) GetContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until completion and returns the full outcome including duration
func (f *Future[T]) Result() types.Result[T] {
	<-f.done
	return types.Result[T]{
		Value:    f.value,
		Error:    f.err,
		Duration: f.duration,
	}
}
