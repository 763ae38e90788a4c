// Package metric provides Prometheus-based metrics collection and an HTTP
// server for exposing them.
//
// The package offers a centralized metrics registry managing both core
// platform metrics (queue depth, sequence lifecycle counts, beat/sequence
// durations) and caller-specific metrics registered through the same
// registry. It includes an HTTP server exposing metrics in Prometheus
// format.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: platform-level metrics automatically registered (Metrics type)
//  2. Service Registry: extensible registration for caller-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: metrics endpoint with a health check (Server type)
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//
//	coreMetrics := registry.CoreMetrics()
//	coreMetrics.RecordSequenceQueued("Demo.ping-symphony", "NORMAL")
//	coreMetrics.RecordSequenceStarted("Demo.ping-symphony")
//
// The metrics server exposes Prometheus-formatted metrics at
// http://localhost:9090/metrics and a health check at
// http://localhost:9090/health.
//
// # Core Metrics
//
// All core metrics use the "musicalconductor" namespace:
//
//   - musicalconductor_sequences_queued_total{sequence,priority}
//   - musicalconductor_sequences_started_total{sequence}
//   - musicalconductor_sequences_completed_total{sequence}
//   - musicalconductor_sequences_failed_total{sequence,reason}
//   - musicalconductor_sequences_cancelled_total{sequence,reason}
//   - musicalconductor_dedup_duplicates_total{sequence}
//   - musicalconductor_beats_duration_seconds{sequence,event}
//   - musicalconductor_sequences_runtime_seconds{sequence}
//   - musicalconductor_queue_wait_seconds{priority}
//   - musicalconductor_queue_depth{priority}
//   - musicalconductor_health_status{component}
//
// # MetricsRegistrar Interface
//
// Callers implement the MetricsRegistrar interface for dependency
// injection, enabling tests to substitute a mock registrar:
//
//	type MyComponent struct {
//	    metrics metric.MetricsRegistrar
//	}
//
// # Thread Safety
//
// All registry operations are thread-safe: registration uses mutex
// protection, metric recording is lock-free (a Prometheus guarantee), and
// PrometheusRegistry() is safe for concurrent access.
package metric
