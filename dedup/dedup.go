// Package dedup implements the sliding-window duplicate-request detector
// that absorbs double-invocation races on play requests.
package dedup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/c360/musicalconductor/errors"
	"github.com/c360/musicalconductor/metric"
	"github.com/c360/musicalconductor/pkg/cache"
)

// Option configures an optional aspect of a DuplicationDetector, following
// the functional-options shape pkg/cache itself uses for its constructors.
type Option func(*options)

type options struct {
	metricsReg    *metric.MetricsRegistry
	metricsPrefix string
}

// WithMetrics exposes the underlying TTL window's hit/miss/eviction counts
// as Prometheus metrics under prefix. If registry is nil, this is a no-op.
func WithMetrics(registry *metric.MetricsRegistry, prefix string) Option {
	return func(o *options) {
		if registry != nil && prefix != "" {
			o.metricsReg = registry
			o.metricsPrefix = prefix
		}
	}
}

// DuplicationDetector tracks canonical request hashes inside a sliding
// window of width W; a hash present in the window marks its request a
// duplicate. Eviction of stale hashes is lazy, handled by the underlying
// TTL cache's own cleanup loop.
type DuplicationDetector struct {
	window cache.Cache[bool]
}

// New creates a detector with the given window width W (default 1000ms per
// caller config) and a cleanup interval of W/2, floored at 50ms.
func New(ctx context.Context, window time.Duration, opts ...Option) (*DuplicationDetector, error) {
	cleanup := window / 2
	if cleanup < 50*time.Millisecond {
		cleanup = 50 * time.Millisecond
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var cacheOpts []cache.Option[bool]
	if o.metricsReg != nil {
		cacheOpts = append(cacheOpts, cache.WithMetrics[bool](o.metricsReg, o.metricsPrefix))
	}

	c, err := cache.NewTTL[bool](ctx, window, cleanup, cacheOpts...)
	if err != nil {
		return nil, errors.WrapFatal(err, "DuplicationDetector", "New", "create TTL window")
	}
	return &DuplicationDetector{window: c}, nil
}

// Contains reports whether hash is currently inside the window. It
// satisfies sequtil.DedupWindow.
func (d *DuplicationDetector) Contains(hash uint64) bool {
	_, found := d.window.Get(key(hash))
	return found
}

// Record inserts hash into the window, starting its TTL countdown.
func (d *DuplicationDetector) Record(hash uint64) error {
	if _, err := d.window.Set(key(hash), true); err != nil {
		return errors.WrapTransient(err, "DuplicationDetector", "Record", "insert hash")
	}
	return nil
}

// Size returns the number of hashes currently inside the window.
func (d *DuplicationDetector) Size() int {
	return d.window.Size()
}

// Close releases the detector's background cleanup goroutine.
func (d *DuplicationDetector) Close() error {
	return d.window.Close()
}

func key(hash uint64) string {
	return fmt.Sprintf("h:%s", strconv.FormatUint(hash, 36))
}
