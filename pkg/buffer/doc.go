// Package buffer provides a thread-safe generic circular buffer with
// configurable overflow policies, built-in statistics tracking, and
// optional Prometheus metrics integration.
//
// # Overview
//
// CircularBuffer is used to hold a fixed-size rolling window of samples -
// this module's own stats package backs its wait-time and run-time
// distributions with one per metric. Buffers are generic, thread-safe, and
// always collect statistics; Prometheus export is opt-in via WithMetrics.
//
// # Quick Start
//
//	buf, err := buffer.NewCircularBuffer[float64](512)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = buf.Write(12.5)
//	value, ok := buf.Read()
//
// With metrics:
//
//	buf, err := buffer.NewCircularBuffer[float64](512,
//		buffer.WithMetrics[float64](registry, "stats_wait_time"),
//	)
//
// # Overflow Policies
//
// Three behaviors are available when capacity is reached:
//
//   - DropOldest: remove the oldest item to make room (the default, and the
//     only one the stats package uses - a full rolling window just evicts
//     its oldest sample)
//   - DropNewest: reject new items when full
//   - Block: Write operations wait for available space
//
// Example with blocking policy:
//
//	buf, _ := buffer.NewCircularBuffer[*Event](100,
//		buffer.WithOverflowPolicy[*Event](buffer.Block),
//	)
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	err := buf.WriteWithContext(ctx, event)
//
// # Observability
//
// Statistics are always collected (atomic counters, available via
// buf.Stats(), no external dependency). Prometheus metrics are optional via
// WithMetrics and track the same operations as a second, independent
// counter set - so Statistics keeps working even when metrics are
// disabled, and reading a hot counter never requires a Prometheus round
// trip.
//
// # Non-Destructive Inspection
//
// Read and ReadBatch remove what they return; Buffer[T] has no full-buffer
// snapshot. A caller that needs repeatable inspection (like a percentile
// computation over the whole window) must drain with ReadBatch and write
// the samples back under its own lock - see stats.distribution.percentiles
// for the pattern.
//
// # Thread Safety
//
// All operations are safe for concurrent use: RWMutex guards internal
// state, Statistics use atomic operations, Block policy uses sync.Cond,
// and drop/eviction callbacks run outside the lock to avoid deadlocks.
//
// # Testing
//
//	go test -race ./pkg/buffer
//	go test -bench=. ./pkg/buffer
package buffer
