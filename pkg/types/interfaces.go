// Package types defines core interfaces and types for the thread pool
package types

import (
	"time"
)

// Task defines a unit of work accepted by a worker pool
type Task interface {
	// Execute runs the task to completion
	Execute() error

	// ID returns the task ID (for tracking only, never used for ordering)
	ID() string
}

// WorkerPool defines the worker pool interface
type WorkerPool interface {
	// SubmitTask enqueues a task for execution
	SubmitTask(task Task) error

	// Shutdown stops accepting tasks and waits for queued tasks to drain
	Shutdown()

	// Close shuts the pool down and releases resources
	Close() error

	// Size returns the number of workers
	Size() int

	// Stats returns worker pool statistics
	Stats() WorkerPoolStats
}

// WorkerPoolStats defines basic statistics for worker pools
type WorkerPoolStats struct {
	// PoolSize is the size of the pool
	PoolSize int

	// ActiveWorkers is the number of workers currently executing a task
	ActiveWorkers int

	// QueueSize is the current number of tasks waiting in the queue
	QueueSize int

	// TotalProcessed is the number of tasks that completed without error
	TotalProcessed int64

	// TotalFailed is the number of tasks that returned an error or panicked
	TotalFailed int64

	// Stopped reports whether shutdown has been requested
	Stopped bool
}

// ErrorHandler observes task failures. A non-nil return is logged by the worker.
type ErrorHandler func(error) error

// Result defines the outcome of a single task
type Result[R any] struct {
	// Value is the execution result
	Value R

	// Error is the execution error
	Error error

	// Duration is the execution time
	Duration time.Duration
}

// OK reports whether the task completed without error
func (r Result[R]) OK() bool {
	return r.Error == nil
}
