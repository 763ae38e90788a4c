// Package executor implements the single-threaded cooperative beat driver.
//
// # Beat Protocol
//
// For each movement in order, for each beat in order: honor the beat's
// timing (IMMEDIATE and AFTER_BEAT both run synchronously in call order;
// DELAYED waits out its delay first), emit beat:started, invoke the
// handler if one is registered for the beat's event (a missing handler is
// a pure bus emission with no payload merge), then emit beat:completed and
// bus-emit the beat's own event.
//
// A handler error is resolved by the beat's errorHandling policy: stop and
// abort-sequence both terminate the run with sequence:failed; continue
// records the error under payload["_errors"] and moves on to the next beat.
//
// # Preemption
//
// Preempt flags the currently running request as cancelled if it owns the
// given resource. The flag is only observed between beats - a handler that
// is mid-flight always finishes before the cancellation is honored.
package executor
