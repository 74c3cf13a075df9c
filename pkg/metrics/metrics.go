// Package metrics provides Prometheus instrumentation for thread pools.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "threadpool"

// Registry holds all metric instances for pools registered against one registerer.
type Registry struct {
	TasksSubmitted        *prometheus.CounterVec
	TasksRejected         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksPanicked         *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	PoolSize              *prometheus.GaugeVec
	PoolActive            *prometheus.GaugeVec
	PoolQueued            *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	labels := []string{"pool"}

	return &Registry{
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "submitted_total",
				Help:      "Total number of tasks accepted into the queue",
			},
			labels,
		),

		TasksRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "rejected_total",
				Help:      "Total number of submissions rejected after shutdown",
			},
			labels,
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "completed_total",
				Help:      "Total number of tasks that finished without error",
			},
			labels,
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "failed_total",
				Help:      "Total number of tasks that returned an error or panicked",
			},
			labels,
		),

		TasksPanicked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "panicked_total",
				Help:      "Total number of tasks that panicked",
			},
			labels,
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "tasks",
				Name:      "execution_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			labels,
		),

		PoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "size",
				Help:      "Number of workers in the pool",
			},
			labels,
		),

		PoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing a task",
			},
			labels,
		),

		PoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "queued_tasks",
				Help:      "Number of tasks waiting in the queue",
			},
			labels,
		),
	}
}

// ForPool binds the registry to one pool name. A nil registry yields a nil
// recorder, and every method on a nil recorder is a no-op.
func (r *Registry) ForPool(name string) *PoolRecorder {
	if r == nil {
		return nil
	}
	return &PoolRecorder{
		submitted: r.TasksSubmitted.WithLabelValues(name),
		rejected:  r.TasksRejected.WithLabelValues(name),
		completed: r.TasksCompleted.WithLabelValues(name),
		failed:    r.TasksFailed.WithLabelValues(name),
		panicked:  r.TasksPanicked.WithLabelValues(name),
		duration:  r.TaskExecutionDuration.WithLabelValues(name),
		size:      r.PoolSize.WithLabelValues(name),
		active:    r.PoolActive.WithLabelValues(name),
		queued:    r.PoolQueued.WithLabelValues(name),
	}
}

// PoolRecorder records metrics for a single named pool.
type PoolRecorder struct {
	submitted prometheus.Counter
	rejected  prometheus.Counter
	completed prometheus.Counter
	failed    prometheus.Counter
	panicked  prometheus.Counter
	duration  prometheus.Observer
	size      prometheus.Gauge
	active    prometheus.Gauge
	queued    prometheus.Gauge
}

// SetPoolSize records the fixed worker count.
func (p *PoolRecorder) SetPoolSize(n int) {
	if p == nil {
		return
	}
	p.size.Set(float64(n))
}

// TaskSubmitted records an accepted submission and the resulting queue depth.
func (p *PoolRecorder) TaskSubmitted(queued int) {
	if p == nil {
		return
	}
	p.submitted.Inc()
	p.queued.Set(float64(queued))
}

// TaskRejected records a submission refused because the pool is stopped.
func (p *PoolRecorder) TaskRejected() {
	if p == nil {
		return
	}
	p.rejected.Inc()
}

// TaskStarted records a worker picking up a task.
func (p *PoolRecorder) TaskStarted(queued int) {
	if p == nil {
		return
	}
	p.active.Inc()
	p.queued.Set(float64(queued))
}

// TaskFinished records the outcome of an executed task.
func (p *PoolRecorder) TaskFinished(d time.Duration, failed, panicked bool) {
	if p == nil {
		return
	}
	p.active.Dec()
	p.duration.Observe(d.Seconds())
	switch {
	case panicked:
		p.panicked.Inc()
		p.failed.Inc()
	case failed:
		p.failed.Inc()
	default:
		p.completed.Inc()
	}
}
