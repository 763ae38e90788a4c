// Package cache provides a generic, thread-safe TTL cache with built-in
// statistics tracking and optional Prometheus metrics integration.
//
// # Overview
//
// Cache[V] is implemented by a single strategy, time-to-live expiration
// with a background cleanup goroutine; items are evicted once their TTL
// elapses, not on a capacity bound.
//
// # Quick Start
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	c, err := cache.NewTTL[*Session](ctx, 30*time.Minute, 5*time.Minute)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c.Set("key", session)
//	value, ok := c.Get("key")
//
// With metrics and an eviction callback:
//
//	c, err := cache.NewTTL[[]byte](ctx, 10*time.Minute, 1*time.Minute,
//		cache.WithMetrics[[]byte](registry, "api_cache"),
//		cache.WithEvictionCallback[[]byte](func(key string, value []byte) {
//			log.Printf("Evicted: %s", key)
//		}),
//	)
//
// # Observability Architecture
//
// The cache package implements a dual-tracking pattern for comprehensive observability:
//
// Statistics (Always On):
//   - Tracks all operations using atomic counters
//   - Zero configuration required
//   - Available via cache.Stats()
//   - Provides computed metrics (hit ratio, requests/sec)
//   - No external dependencies
//
// Prometheus Metrics (Optional):
//   - Enabled via WithMetrics() option
//   - Exports to Prometheus for time-series monitoring
//   - Includes component labels for instance identification
//   - Standard metric types (Counter, Gauge)
//
// Both are tracked independently: Statistics stay available without a
// Prometheus dependency (debugging, tests, minimal deployments), while
// Metrics feed dashboards and alerting. The cost is one extra atomic
// increment per operation when metrics are enabled.
//
// # Functional Options Pattern
//
// The package uses functional options for clean, composable configuration:
//
//	cache, err := cache.NewTTL[V](ctx, ttl, cleanupInterval,
//		cache.WithMetrics[V](registry, "component"),
//		cache.WithEvictionCallback[V](callback),
//	)
//
// Available options:
//   - WithMetrics: Enable Prometheus metrics export
//   - WithEvictionCallback: Get notified when items are evicted
//   - WithStatsInterval: Record a stats interval (stored, not used by the TTL cache)
//
// # Thread Safety
//
// All cache operations are thread-safe for concurrent use: reads take an
// RWMutex read lock, writes are serialized, Statistics use atomic
// operations, and eviction callbacks are invoked outside the lock to avoid
// deadlocks.
//
// # Performance Characteristics
//
//   - Get: O(1) map lookup + expiry check
//   - Set: O(1) map insert
//   - Delete: O(1) map delete
//   - Cleanup: O(n) periodic scan (background)
//   - Memory: O(n) map + expiry tracking
//
// # Context and Cleanup
//
// NewTTL starts a background cleanup goroutine tied to the supplied
// context; always pass one that is canceled when the cache should stop:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	cache, _ := cache.NewTTL[V](ctx, ttl, cleanupInterval)
//	// Cleanup goroutine stops when ctx is canceled, or call cache.Close().
//
// # Testing
//
// The package includes comprehensive tests with race detection:
//
//	go test -race ./pkg/cache
//
// Benchmarks are available to validate performance:
//
//	go test -bench=. ./pkg/cache
package cache
