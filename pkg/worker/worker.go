package worker

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/gothreadpool/pkg/queue"
	"github.com/jzx17/gothreadpool/pkg/types"
)

// WorkerState defines the state of a Worker
type WorkerState int32

const (
	// WorkerStateIdle represents a worker waiting on the queue
	WorkerStateIdle WorkerState = iota
	// WorkerStateExecuting represents a worker running a task
	WorkerStateExecuting
	// WorkerStateDraining marks the gap between tasks once a worker has taken
	// work after shutdown. A draining task itself reports WorkerStateExecuting.
	WorkerStateDraining
	// WorkerStateTerminated represents a worker whose loop has exited
	WorkerStateTerminated
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateIdle:
		return "idle"
	case WorkerStateExecuting:
		return "executing"
	case WorkerStateDraining:
		return "draining"
	case WorkerStateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Worker represents a single worker goroutine draining a shared queue
type Worker struct {
	id    int
	state int32 // atomic state
	queue *queue.Queue[types.Task]
	done  chan struct{}

	// statistics
	totalProcessed int64
	totalFailed    int64
	lastTaskTime   int64 // Unix nanosecond timestamp

	// error handling
	errorHandler types.ErrorHandler

	// pool callbacks for syncing statistics
	startCallback      func()
	completionCallback func(time.Duration, error)

	clock  types.Clock
	logger *slog.Logger

	mu sync.RWMutex
}

// NewWorker creates a new Worker with default real clock
func NewWorker(id int, q *queue.Queue[types.Task]) *Worker {
	return NewWorkerWithClock(id, q, types.NewRealClock())
}

// NewWorkerWithClock creates a new Worker with specified clock
func NewWorkerWithClock(id int, q *queue.Queue[types.Task], clock types.Clock) *Worker {
	if clock == nil {
		clock = types.NewRealClock()
	}

	return &Worker{
		id:     id,
		state:  int32(WorkerStateIdle),
		queue:  q,
		done:   make(chan struct{}),
		clock:  clock,
		logger: slog.Default(),
	}
}

// ID returns the Worker ID
func (w *Worker) ID() int {
	return w.id
}

// State returns the current Worker state
func (w *Worker) State() WorkerState {
	return WorkerState(atomic.LoadInt32(&w.state))
}

// Done returns a channel closed when the worker loop has exited
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// SetErrorHandler sets the error handler
func (w *Worker) SetErrorHandler(handler types.ErrorHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.errorHandler = handler
}

// SetStartCallback sets the callback invoked when a task is picked up
func (w *Worker) SetStartCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.startCallback = callback
}

// SetCompletionCallback sets the task completion callback
func (w *Worker) SetCompletionCallback(callback func(time.Duration, error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.completionCallback = callback
}

// SetLogger sets the logger
func (w *Worker) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logger
}

// Run executes queued tasks until the queue is closed and empty
func (w *Worker) Run() {
	defer close(w.done)

	w.mu.RLock()
	logger := w.logger.With("worker_id", w.id)
	w.mu.RUnlock()

	logger.Debug("worker started")

	for {
		task, draining, ok := w.queue.Pop()
		if !ok {
			atomic.StoreInt32(&w.state, int32(WorkerStateTerminated))
			logger.Debug("worker stopped",
				"processed", atomic.LoadInt64(&w.totalProcessed),
				"failed", atomic.LoadInt64(&w.totalFailed))
			return
		}

		w.processTask(task, logger)

		if draining {
			atomic.StoreInt32(&w.state, int32(WorkerStateDraining))
		} else {
			atomic.StoreInt32(&w.state, int32(WorkerStateIdle))
		}
	}
}

// processTask processes a single task
func (w *Worker) processTask(task types.Task, logger *slog.Logger) {
	atomic.StoreInt32(&w.state, int32(WorkerStateExecuting))

	w.mu.RLock()
	startCallback := w.startCallback
	completionCallback := w.completionCallback
	w.mu.RUnlock()

	if startCallback != nil {
		startCallback()
	}

	startTime := w.clock.Now()
	atomic.StoreInt64(&w.lastTaskTime, startTime.UnixNano())

	err := w.executeTask(task)

	executionTime := w.clock.Since(startTime)

	if err != nil {
		atomic.AddInt64(&w.totalFailed, 1)
		w.handleError(err, task, logger)
	} else {
		atomic.AddInt64(&w.totalProcessed, 1)
	}

	if completionCallback != nil {
		completionCallback(executionTime, err)
	}
}

// executeTask executes a task with panic recovery support
func (w *Worker) executeTask(task types.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = types.NewPanicError(task.ID(), r, debug.Stack()).
				WithContext("worker_id", w.id)
		}
	}()

	return task.Execute()
}

// handleError logs a task failure and forwards it to the error handler
func (w *Worker) handleError(err error, task types.Task, logger *slog.Logger) {
	if types.IsPanic(err) {
		logger.Warn("task panicked", "task_id", task.ID(), "error", err)
	} else {
		logger.Debug("task failed", "task_id", task.ID(), "error", err)
	}

	w.mu.RLock()
	handler := w.errorHandler
	w.mu.RUnlock()

	if handler != nil {
		w.callErrorHandler(handler, err, task, logger)
	}
}

// callErrorHandler runs a user error handler, recovering any panic it raises
func (w *Worker) callErrorHandler(handler types.ErrorHandler, err error, task types.Task, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("error handler panicked", "task_id", task.ID(), "panic", r)
		}
	}()

	if handledErr := handler(err); handledErr != nil {
		logger.Warn("error handler returned error", "task_id", task.ID(), "error", handledErr)
	}
}

// Stats gets Worker statistics
func (w *Worker) Stats() WorkerStats {
	var last time.Time
	if ns := atomic.LoadInt64(&w.lastTaskTime); ns != 0 {
		last = time.Unix(0, ns)
	}
	return WorkerStats{
		ID:             w.id,
		State:          w.State(),
		TotalProcessed: atomic.LoadInt64(&w.totalProcessed),
		TotalFailed:    atomic.LoadInt64(&w.totalFailed),
		LastTaskTime:   last,
	}
}

// WorkerStats defines Worker statistics
type WorkerStats struct {
	ID             int
	State          WorkerState
	TotalProcessed int64
	TotalFailed    int64
	LastTaskTime   time.Time
}

// IsActive checks if Worker is executing a task
func (ws WorkerStats) IsActive() bool {
	return ws.State == WorkerStateExecuting
}

// IsIdle checks if Worker is idle
func (ws WorkerStats) IsIdle() bool {
	return ws.State == WorkerStateIdle
}

// GetSuccessRate gets the success rate
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}

// GetErrorRate gets the error rate
func (ws WorkerStats) GetErrorRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalFailed) / float64(total)
}
