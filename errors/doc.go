// Package errors provides standardized error handling patterns for
// MusicalConductor components.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// This classification enables intelligent error handling strategies
// throughout the orchestration runtime, allowing components to make informed
// decisions about retries and failure reporting without hardcoded error
// string matching.
//
// # Error Classification
//
// Errors are automatically classified based on their type or content:
//
//   - Transient: rate limiting, context deadlines (retry recommended)
//   - Invalid: validation failures, unknown sequences, duplicate or
//     rejected requests (do not retry)
//   - Fatal: resource exhaustion, data corruption, a sequence whose
//     handlers disappeared before the drainer could start it
//
// The classification system integrates seamlessly with Go's standard error
// handling patterns, supporting errors.Is(), errors.As(), and error
// wrapping chains.
//
// # Quick Start
//
// Use standard error variables for common conditions:
//
//	if !registry.Has(name) {
//	    return errors.ErrSequenceNotFound
//	}
//
// Wrap errors with context for debugging:
//
//	if err := handler(ctx, beatData, ec); err != nil {
//	    return errors.WrapInvalid(err, "SequenceExecutor", "runBeat", "invoke handler")
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// The generic Wrap() function preserves the original error's classification:
//
//	errors.Wrap(err, "Component", "Method", "action")
//
// # Standard Error Variables
//
// The orchestration-specific sentinels:
//
//   - ErrSequenceNotFound: Play/GetHandlers referenced an unregistered name
//   - ErrValidationFailed: a sequence definition failed structural checks
//   - ErrDuplicateRequest: rejected by the dedup window
//   - ErrResourceRejected: rejected by resource conflict arbitration
//   - ErrHandlerError: a beat handler returned an error
//   - ErrMissingAtDrain: handlers were unregistered before drain
//   - ErrPreemptedByHigherPriority: cancelled by a higher-priority override
//
// # Retry Configuration
//
// RetryConfig and its DefaultRetryConfig back the few call sites that retry
// a transient failure with exponential backoff instead of just logging it,
// such as SequenceOrchestrator.Play re-attempting a failed dedup-hash record:
//
//	config := errors.DefaultRetryConfig()
//	for attempt := 0; attempt < config.MaxRetries; attempt++ {
//	    if err = op(); err == nil {
//	        break
//	    }
//	    if !config.ShouldRetry(err, attempt) {
//	        break
//	    }
//	    time.Sleep(config.BackoffDelay(attempt))
//	}
//
// # Context Cancellation
//
// Context errors (context.DeadlineExceeded, context.Canceled) are
// automatically classified as Transient.
//
// # Thread Safety
//
// All classification and wrapping operations are thread-safe. Error
// variables are immutable and safe for concurrent access.
package errors
