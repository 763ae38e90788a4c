package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the orchestration runtime's platform-level metrics.
type Metrics struct {
	SequencesQueued    *prometheus.CounterVec
	SequencesStarted   *prometheus.CounterVec
	SequencesCompleted *prometheus.CounterVec
	SequencesFailed    *prometheus.CounterVec
	SequencesCancelled *prometheus.CounterVec
	DuplicateRequests  *prometheus.CounterVec
	BeatDuration       *prometheus.HistogramVec
	SequenceRuntime    *prometheus.HistogramVec
	QueueWaitTime      *prometheus.HistogramVec
	QueueDepth         *prometheus.GaugeVec
	HealthCheckStatus  *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics registered
// under the "musicalconductor" namespace.
func NewMetrics() *Metrics {
	return &Metrics{
		SequencesQueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "queued_total",
				Help:      "Total number of sequence requests admitted into the queue",
			},
			[]string{"sequence", "priority"},
		),

		SequencesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "started_total",
				Help:      "Total number of sequences handed to the executor",
			},
			[]string{"sequence"},
		),

		SequencesCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "completed_total",
				Help:      "Total number of sequences that ran to completion",
			},
			[]string{"sequence"},
		),

		SequencesFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "failed_total",
				Help:      "Total number of sequences terminated by a beat error policy",
			},
			[]string{"sequence", "reason"},
		),

		SequencesCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "cancelled_total",
				Help:      "Total number of sequences cancelled (duplicate or preempted)",
			},
			[]string{"sequence", "reason"},
		),

		DuplicateRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "musicalconductor",
				Subsystem: "dedup",
				Name:      "duplicates_total",
				Help:      "Total number of play requests rejected as duplicates within the dedup window",
			},
			[]string{"sequence"},
		),

		BeatDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "musicalconductor",
				Subsystem: "beats",
				Name:      "duration_seconds",
				Help:      "Time spent inside a single beat handler",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"sequence", "event"},
		),

		SequenceRuntime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "musicalconductor",
				Subsystem: "sequences",
				Name:      "runtime_seconds",
				Help:      "Total wall-clock runtime of a completed sequence",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"sequence"},
		),

		QueueWaitTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "musicalconductor",
				Subsystem: "queue",
				Name:      "wait_seconds",
				Help:      "Time a request spent in the queue before execution started",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"priority"},
		),

		QueueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "musicalconductor",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of requests waiting in the execution queue",
			},
			[]string{"priority"},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "musicalconductor",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=degraded, 2=healthy)",
			},
			[]string{"component"},
		),
	}
}

// RecordSequenceQueued increments the queued counter for a sequence/priority pair.
func (c *Metrics) RecordSequenceQueued(sequence, priority string) {
	c.SequencesQueued.WithLabelValues(sequence, priority).Inc()
}

// RecordSequenceStarted increments the started counter for a sequence.
func (c *Metrics) RecordSequenceStarted(sequence string) {
	c.SequencesStarted.WithLabelValues(sequence).Inc()
}

// RecordSequenceCompleted increments the completed counter and observes runtime.
func (c *Metrics) RecordSequenceCompleted(sequence string, runtime time.Duration) {
	c.SequencesCompleted.WithLabelValues(sequence).Inc()
	c.SequenceRuntime.WithLabelValues(sequence).Observe(runtime.Seconds())
}

// RecordSequenceFailed increments the failed counter for a sequence/reason pair.
func (c *Metrics) RecordSequenceFailed(sequence, reason string) {
	c.SequencesFailed.WithLabelValues(sequence, reason).Inc()
}

// RecordSequenceCancelled increments the cancelled counter for a sequence/reason pair.
func (c *Metrics) RecordSequenceCancelled(sequence, reason string) {
	c.SequencesCancelled.WithLabelValues(sequence, reason).Inc()
}

// RecordDuplicate increments the duplicate-request counter for a sequence.
func (c *Metrics) RecordDuplicate(sequence string) {
	c.DuplicateRequests.WithLabelValues(sequence).Inc()
}

// RecordBeatDuration observes a beat handler's wall-clock duration.
func (c *Metrics) RecordBeatDuration(sequence, event string, d time.Duration) {
	c.BeatDuration.WithLabelValues(sequence, event).Observe(d.Seconds())
}

// RecordQueueWaitTime observes how long a request waited before execution started.
func (c *Metrics) RecordQueueWaitTime(priority string, d time.Duration) {
	c.QueueWaitTime.WithLabelValues(priority).Observe(d.Seconds())
}

// SetQueueDepth sets the current queue depth gauge for a priority band.
func (c *Metrics) SetQueueDepth(priority string, depth int) {
	c.QueueDepth.WithLabelValues(priority).Set(float64(depth))
}

// RecordHealthStatus updates the health check status gauge for a component.
func (c *Metrics) RecordHealthStatus(component string, status int) {
	c.HealthCheckStatus.WithLabelValues(component).Set(float64(status))
}
