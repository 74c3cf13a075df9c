package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/jzx17/gothreadpool/pkg/metrics"
	"github.com/jzx17/gothreadpool/pkg/queue"
	"github.com/jzx17/gothreadpool/pkg/types"
)

// Config defines configuration for the thread pool
type Config struct {
	// PoolSize is the number of worker goroutines. Zero yields a pool that
	// rejects every submission.
	PoolSize int

	// Name labels the pool in logs and metrics
	Name string

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler observes task failures (optional)
	ErrorHandler types.ErrorHandler

	// Logger receives lifecycle and failure logs (optional, defaults to slog.Default())
	Logger *slog.Logger

	// Metrics registry (optional, nil disables metrics)
	Metrics *metrics.Registry
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		PoolSize: runtime.NumCPU(),
		Name:     "default",
		Clock:    types.NewRealClock(),
		Logger:   slog.Default(),
	}
}

// ThreadPool runs submitted tasks on a fixed set of workers in FIFO dequeue order
type ThreadPool struct {
	config   Config
	workers  []*Worker
	queue    *queue.Queue[types.Task]
	wg       sync.WaitGroup
	logger   *slog.Logger
	recorder *metrics.PoolRecorder

	shutdownOnce sync.Once
	stopped      chan struct{}
}

var _ types.WorkerPool = (*ThreadPool)(nil)

// New creates a thread pool with size workers and default settings
func New(size int) (*ThreadPool, error) {
	cfg := DefaultConfig()
	cfg.PoolSize = size
	return NewWithConfig(cfg)
}

// NewWithConfig creates a thread pool and starts its workers immediately
func NewWithConfig(config *Config) (*ThreadPool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.PoolSize < 0 {
		return nil, fmt.Errorf("%w: pool size must not be negative, got %d", types.ErrInvalidConfig, config.PoolSize)
	}

	cfg := *config
	if cfg.Clock == nil {
		cfg.Clock = types.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}

	pool := &ThreadPool{
		config:   cfg,
		workers:  make([]*Worker, cfg.PoolSize),
		queue:    queue.New[types.Task](),
		logger:   cfg.Logger.With("pool", cfg.Name),
		recorder: cfg.Metrics.ForPool(cfg.Name),
		stopped:  make(chan struct{}),
	}
	pool.recorder.SetPoolSize(cfg.PoolSize)

	if cfg.PoolSize == 0 {
		pool.logger.Warn("thread pool created without workers, all submissions will be rejected")
		pool.queue.Close()
		close(pool.stopped)
		return pool, nil
	}

	for i := 0; i < cfg.PoolSize; i++ {
		w := NewWorkerWithClock(i, pool.queue, cfg.Clock)
		w.SetLogger(pool.logger)
		if cfg.ErrorHandler != nil {
			w.SetErrorHandler(cfg.ErrorHandler)
		}
		w.SetStartCallback(pool.onTaskStart)
		w.SetCompletionCallback(pool.onTaskComplete)
		pool.workers[i] = w
	}

	pool.wg.Add(cfg.PoolSize)
	for _, w := range pool.workers {
		go func(w *Worker) {
			defer pool.wg.Done()
			w.Run()
		}(w)
	}

	go func() {
		pool.wg.Wait()
		pool.logger.Debug("thread pool stopped")
		close(pool.stopped)
	}()

	pool.logger.Debug("thread pool started", "workers", cfg.PoolSize)
	return pool, nil
}

func (p *ThreadPool) onTaskStart() {
	p.recorder.TaskStarted(p.queue.Len())
}

func (p *ThreadPool) onTaskComplete(d time.Duration, err error) {
	p.recorder.TaskFinished(d, err != nil, types.IsPanic(err))
}

// SubmitTask enqueues a fire-and-forget task
func (p *ThreadPool) SubmitTask(task types.Task) error {
	if task == nil {
		return types.ErrNilTask
	}
	return p.enqueue(task)
}

func (p *ThreadPool) enqueue(task types.Task) error {
	if err := p.queue.Push(task); err != nil {
		if errors.Is(err, queue.ErrClosed) {
			p.recorder.TaskRejected()
			return types.ErrPoolStopped
		}
		return err
	}
	p.recorder.TaskSubmitted(p.queue.Len())
	return nil
}

// Shutdown stops accepting tasks and blocks until every worker has drained
// the queue and exited. Calling it again waits for the same completion.
func (p *ThreadPool) Shutdown() {
	p.requestShutdown()
	<-p.stopped
}

// ShutdownContext is like Shutdown but returns ctx.Err() if ctx is done first.
// Shutdown stays requested and workers keep draining in the background.
func (p *ThreadPool) ShutdownContext(ctx context.Context) error {
	p.requestShutdown()
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ThreadPool) requestShutdown() {
	p.shutdownOnce.Do(func() {
		pending := p.queue.Len()
		p.queue.Close()
		p.logger.Debug("thread pool shutting down", "pending", pending)
	})
}

// Close shuts the pool down, for use with defer
func (p *ThreadPool) Close() error {
	p.Shutdown()
	return nil
}

// Stopped returns a channel closed once every worker has exited
func (p *ThreadPool) Stopped() <-chan struct{} {
	return p.stopped
}

// Size returns the worker pool size
func (p *ThreadPool) Size() int {
	return p.config.PoolSize
}

// Name returns the pool name
func (p *ThreadPool) Name() string {
	return p.config.Name
}

// IsStopped reports whether shutdown has been requested
func (p *ThreadPool) IsStopped() bool {
	return p.queue.Closed()
}

// QueueLength gets the current queue length
func (p *ThreadPool) QueueLength() int {
	return p.queue.Len()
}

// Stats gets basic worker pool statistics
func (p *ThreadPool) Stats() types.WorkerPoolStats {
	stats := types.WorkerPoolStats{
		PoolSize:  p.config.PoolSize,
		QueueSize: p.queue.Len(),
		Stopped:   p.queue.Closed(),
	}

	for _, w := range p.workers {
		ws := w.Stats()
		if ws.IsActive() {
			stats.ActiveWorkers++
		}
		stats.TotalProcessed += ws.TotalProcessed
		stats.TotalFailed += ws.TotalFailed
	}
	return stats
}

// GetWorkerStats gets statistics of all Workers
func (p *ThreadPool) GetWorkerStats() []WorkerStats {
	stats := make([]WorkerStats, len(p.workers))
	for i, w := range p.workers {
		stats[i] = w.Stats()
	}
	return stats
}
