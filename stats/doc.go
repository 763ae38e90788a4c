// Package stats provides StatisticsManager, the orchestration runtime's
// counters and wait/run-time distributions, exposed via a single Snapshot.
package stats
