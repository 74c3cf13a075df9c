package worker

import (
	"github.com/jzx17/gothreadpool/pkg/types"
)

// Submit enqueues fn and returns a Future for its outcome without waiting.
// It returns types.ErrPoolStopped once shutdown has been requested.
func Submit[T any](p *ThreadPool, fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}

	task := newFutureTask(fn, p.config.Clock)
	if err := p.enqueue(task); err != nil {
		return nil, err
	}
	return task.future, nil
}

// SubmitFunc is Submit for computations that cannot return an error
func SubmitFunc[T any](p *ThreadPool, fn func() T) (*Future[T], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	return Submit(p, func() (T, error) {
		return fn(), nil
	})
}
