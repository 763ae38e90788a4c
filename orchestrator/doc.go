// Package orchestrator wires the registry, deduplication window, resource
// delegator, execution queue, and executor together behind a single Play
// entry point.
//
// # Admission pipeline
//
// Play resolves the sequence name, rejects unknown sequences, checks for a
// duplicate within the dedup window, extracts the symphony name/resource
// id/instance id, arbitrates resource ownership, and only then enqueues.
// Ownership for an allow or override resolution is taken immediately, at
// admission time, so a second conflicting request sees the right answer
// even before the first has reached the front of the queue; a queue
// resolution defers ownership until the drainer actually runs it.
//
// # Drainer
//
// The drainer wakes on a buffered kick channel (Play sends one after every
// successful enqueue) and drains the queue until it's empty or the executor
// is occupied. A missing sequence at drain time (unregistered after being
// queued) fails that one request and continues with the next; it never
// halts the drainer.
//
// # Singleton
//
// Most callers should build an explicit Orchestrator with New and pass it
// around. SetDefault/Default exist for composition roots that want a
// single process-wide instance without threading it through every call
// site.
package orchestrator
