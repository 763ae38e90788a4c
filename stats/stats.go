// Package stats implements the orchestration runtime's counters and
// wait/run-time distributions.
package stats

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/c360/musicalconductor/errors"
	"github.com/c360/musicalconductor/metric"
	"github.com/c360/musicalconductor/pkg/buffer"
)

const defaultDistributionCapacity = 512

// Option configures an optional aspect of a Manager.
type Option func(*options)

type options struct {
	metricsReg *metric.MetricsRegistry
}

// WithMetrics exposes both distributions' write/overflow counts as
// Prometheus metrics. If registry is nil, this is a no-op.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(o *options) {
		o.metricsReg = registry
	}
}

// Counters are the monotonic admission/execution counters.
type Counters struct {
	Queued     int64
	Started    int64
	Completed  int64
	Errored    int64
	Cancelled  int64
	Duplicates int64
}

// Percentiles summarizes a distribution at the p50/p90/p99 marks, in
// milliseconds.
type Percentiles struct {
	P50 float64
	P90 float64
	P99 float64
	N   int
}

// Snapshot is a point-in-time view of all tracked statistics.
type Snapshot struct {
	Counters            Counters
	WaitTimePercentiles Percentiles
	RunTimePercentiles  Percentiles
}

// Manager tracks counters and rolling wait/run-time distributions for the
// orchestration runtime.
type Manager struct {
	queued     atomic.Int64
	started    atomic.Int64
	completed  atomic.Int64
	errored    atomic.Int64
	cancelled  atomic.Int64
	duplicates atomic.Int64

	waitTime *distribution
	runTime  *distribution
}

// New creates a statistics manager with the default rolling-window capacity
// for its distributions.
func New(opts ...Option) (*Manager, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	wait, err := newDistribution(defaultDistributionCapacity, o, "stats_wait_time")
	if err != nil {
		return nil, errors.WrapFatal(err, "StatisticsManager", "New", "create wait-time distribution")
	}
	run, err := newDistribution(defaultDistributionCapacity, o, "stats_run_time")
	if err != nil {
		return nil, errors.WrapFatal(err, "StatisticsManager", "New", "create run-time distribution")
	}
	return &Manager{waitTime: wait, runTime: run}, nil
}

func (m *Manager) RecordSequenceQueued()   { m.queued.Add(1) }
func (m *Manager) RecordSequenceStarted()  { m.started.Add(1) }
func (m *Manager) RecordError()            { m.errored.Add(1) }
func (m *Manager) RecordCancelled()        { m.cancelled.Add(1) }
func (m *Manager) RecordDuplicate()        { m.duplicates.Add(1) }

// RecordSequenceCompleted records a completed run and its total runtime.
func (m *Manager) RecordSequenceCompleted(runtimeMS float64) {
	m.completed.Add(1)
	m.runTime.record(runtimeMS)
}

// UpdateQueueWaitTime records how long a request waited in the queue before
// being handed to the executor.
func (m *Manager) UpdateQueueWaitTime(waitMS float64) {
	m.waitTime.record(waitMS)
}

// Snapshot returns the current counters and distribution percentiles.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Counters: Counters{
			Queued:     m.queued.Load(),
			Started:    m.started.Load(),
			Completed:  m.completed.Load(),
			Errored:    m.errored.Load(),
			Cancelled:  m.cancelled.Load(),
			Duplicates: m.duplicates.Load(),
		},
		WaitTimePercentiles: m.waitTime.percentiles(),
		RunTimePercentiles:  m.runTime.percentiles(),
	}
}

// distribution is a rolling window of samples backed by a circular buffer.
// pkg/buffer's Buffer[T] interface only exposes destructive reads (Read,
// ReadBatch) and a single-item Peek, with no way to inspect every element
// without draining it, so percentiles() drains the buffer under a lock and
// writes the samples straight back to preserve the rolling window.
type distribution struct {
	mu  sync.Mutex
	buf buffer.Buffer[float64]
}

func newDistribution(capacity int, o *options, metricsPrefix string) (*distribution, error) {
	var bufOpts []buffer.Option[float64]
	if o.metricsReg != nil {
		bufOpts = append(bufOpts, buffer.WithMetrics[float64](o.metricsReg, metricsPrefix))
	}

	buf, err := buffer.NewCircularBuffer[float64](capacity, bufOpts...)
	if err != nil {
		return nil, err
	}
	return &distribution{buf: buf}, nil
}

func (d *distribution) record(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_ = d.buf.Write(v) // DropOldest policy: a full window just evicts its oldest sample.
}

func (d *distribution) percentiles() Percentiles {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.buf.Size()
	if n == 0 {
		return Percentiles{}
	}

	values := d.buf.ReadBatch(n)
	for _, v := range values {
		_ = d.buf.Write(v)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return Percentiles{
		P50: percentileOf(sorted, 50),
		P90: percentileOf(sorted, 90),
		P99: percentileOf(sorted, 99),
		N:   len(sorted),
	}
}

// percentileOf uses the nearest-rank method over an already-sorted slice.
func percentileOf(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
