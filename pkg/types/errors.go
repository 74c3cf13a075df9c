// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolStopped indicates a submission after shutdown was requested
	ErrPoolStopped = errors.New("thread pool is stopped")

	// ErrInvalidConfig indicates invalid pool configuration
	ErrInvalidConfig = errors.New("invalid thread pool configuration")

	// ErrNilTask indicates a nil task or computation was submitted
	ErrNilTask = errors.New("task cannot be nil")
)

// TaskError represents a failure raised by a task's execution
type TaskError struct {
	// TaskID is the ID of the task that failed
	TaskID string

	// Cause is the underlying error, nil when the task panicked with a non-error value
	Cause error

	// Panic holds the recovered value if the task panicked
	Panic interface{}

	// Stack is the goroutine stack captured at recovery, empty unless the task panicked
	Stack string

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TaskError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("task %s panicked: %v", e.TaskID, e.Panic)
	}
	return fmt.Sprintf("task %s failed: %v", e.TaskID, e.Cause)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Cause
}

// NewTaskError wraps an error returned by a task
func NewTaskError(taskID string, cause error) *TaskError {
	return &TaskError{
		TaskID:  taskID,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewPanicError converts a recovered panic into a TaskError
func NewPanicError(taskID string, recovered interface{}, stack []byte) *TaskError {
	e := NewTaskError(taskID, nil)
	e.Panic = recovered
	e.Stack = string(stack)
	if err, ok := recovered.(error); ok {
		e.Cause = err
	}
	return e
}

// WithContext adds error context
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsPanic reports whether err was caused by a task panic
func IsPanic(err error) bool {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Panic != nil
	}
	return false
}
