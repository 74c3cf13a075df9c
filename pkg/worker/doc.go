/*
Package worker provides a fixed-size thread pool whose workers drain a shared FIFO queue and report each task's outcome through a Future.

# Overview

The package implements:
- A fixed number of long-lived worker goroutines started at construction
- An unbounded FIFO task queue shared by all workers
- Typed futures for task results and failures
- Panic containment per task
- Graceful shutdown that drains everything already accepted

# Core Components

## ThreadPool

Owns the workers and the queue and is the only point of submission and shutdown:
- Workers start in NewWithConfig, there is no separate Start
- Submissions after Shutdown fail with types.ErrPoolStopped
- Shutdown blocks until every queued task has run and every worker has exited

## Worker

Single worker goroutine responsible for:
- Waiting on the queue and executing tasks in dequeue order
- Recovering panics and recording failures
- Statistics collection

Worker states move idle -> executing -> idle, and after shutdown is observed
through draining to terminated.

## Future

One-shot handle for a task's outcome. Get blocks until the task finishes and
then returns the same value or *types.TaskError on every call.

# Ordering

Tasks are dequeued in the order they were accepted. With more than one worker,
completion order is not guaranteed to follow submission order.

# Error Handling

A returned error is wrapped in *types.TaskError, so errors.Is and errors.As
still reach the cause. A panic is converted into *types.TaskError carrying the
recovered value and stack; types.IsPanic reports it. Failures never stop a
worker and never affect other tasks. Nothing is retried.

# Usage Examples

Basic usage:

	pool, err := worker.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	futures := make([]*worker.Future[int], 0, 8)
	for i := 0; i < 8; i++ {
		f, err := worker.SubmitFunc(pool, func() int { return i * i })
		if err != nil {
			log.Fatal(err)
		}
		futures = append(futures, f)
	}

	for _, f := range futures {
		v, err := f.Get()
		if err != nil {
			log.Printf("task %s failed: %v", f.ID(), err)
			continue
		}
		fmt.Println(v)
	}

Submission after shutdown:

	pool.Shutdown()
	if _, err := worker.SubmitFunc(pool, work); errors.Is(err, types.ErrPoolStopped) {
		log.Println("pool no longer accepts work")
	}

# Configuration Options

Config supports the following settings:
- PoolSize: Number of worker goroutines
- Name: Label used by logs and metrics
- Clock: Time source for task durations
- ErrorHandler: Observer for task failures
- Logger: slog logger for lifecycle and failure events
- Metrics: Prometheus registry from the metrics package
*/
package worker
