// Package executor implements SequenceExecutor: the single-threaded
// cooperative driver that walks one admitted request's movements and beats,
// honoring each beat's timing and error-handling policy and emitting
// lifecycle events on the bus as it goes.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/musicalconductor/bus"
	"github.com/c360/musicalconductor/health"
	"github.com/c360/musicalconductor/metric"
	"github.com/c360/musicalconductor/sequence"
	"github.com/c360/musicalconductor/sequtil"
	"github.com/c360/musicalconductor/stats"
)

// Result is what Run returns once a request reaches a terminal state.
type Result struct {
	Completed bool
	Cancelled bool
	Reason    string
	Err       error
}

// Executor drives exactly one request to completion at a time. Only one
// sequence executes process-wide; IsRunning reports the invariant.
type Executor struct {
	eventBus *bus.Bus
	metrics  *metric.Metrics
	health   *health.Monitor
	stats    *stats.Manager
	logger   *slog.Logger

	longRunWarning time.Duration

	running atomic.Bool
	mu      sync.Mutex
	current string // resourceId owned by the currently running request, if any
	preempt bool
}

// New creates an executor. metrics and health may be nil; a nil eventBus
// panics, since a sequence with no bus is unobservable by contract.
func New(eventBus *bus.Bus, metrics *metric.Metrics, healthMonitor *health.Monitor, statsManager *stats.Manager, longRunWarning time.Duration, logger *slog.Logger) *Executor {
	if eventBus == nil {
		panic("executor: eventBus must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		eventBus:       eventBus,
		metrics:        metrics,
		health:         healthMonitor,
		stats:          statsManager,
		longRunWarning: longRunWarning,
		logger:         logger,
	}
}

// IsRunning reports whether a sequence currently occupies the executor.
func (e *Executor) IsRunning() bool {
	return e.running.Load()
}

// Preempt flags the currently running request as cancelled if it owns
// resourceID. The cancellation is observed between beats, never mid-handler.
func (e *Executor) Preempt(resourceID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != "" && e.current == resourceID {
		e.preempt = true
	}
}

// Run drives req to a terminal state: SEQUENCE_COMPLETED, SEQUENCE_FAILED,
// or SEQUENCE_CANCELLED. Only one Run may be in flight at a time; callers
// (the drainer) must serialize calls.
func (e *Executor) Run(ctx context.Context, req *sequence.Request, seq *sequence.Sequence, handlers sequence.HandlerTable) Result {
	e.running.Store(true)
	e.mu.Lock()
	e.current = req.ResourceID
	e.preempt = false
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.current = ""
		e.preempt = false
		e.mu.Unlock()
		e.running.Store(false)
	}()

	start := time.Now()
	done := e.startLongRunWatchdog(req, start)
	defer close(done)

	e.logger.Debug("sequence run starting", "sequenceName", req.SequenceName, "requestId", req.RequestID)

	ec := sequtil.CreateExecutionContext(req, e.eventBus)
	ec.Sequence = seq

	e.emit("sequence:started", bus.Event{
		"sequenceName": req.SequenceName,
		"requestId":    req.RequestID,
		"instanceId":   req.InstanceID,
	})
	if e.stats != nil {
		e.stats.RecordSequenceStarted()
	}
	if e.metrics != nil {
		e.metrics.RecordSequenceStarted(req.SequenceName)
	}

	for mi := range seq.Movements {
		ec.MovementIndex = mi
		mv := &seq.Movements[mi]

		e.emit("movement:started", bus.Event{
			"sequenceName": req.SequenceName,
			"requestId":    req.RequestID,
			"movement":     mv.Name,
			"index":        mi,
		})

		for bi := range mv.Beats {
			beat := &mv.Beats[bi]
			ec.BeatIndex = bi

			if bi > 0 || mi > 0 {
				ec.ExecutionType = sequence.ExecutionConsecutive
			}

			outcome := e.runBeat(ctx, req, ec, beat, handlers)
			if outcome.terminal {
				result := Result{Reason: outcome.reason, Err: outcome.err}
				if outcome.cancelled {
					result.Cancelled = true
					e.finishCancelled(req, outcome.reason)
				} else {
					e.finishFailed(req, seq.Name, outcome.reason, outcome.err)
				}
				return result
			}
		}
	}

	runtimeMS := float64(time.Since(start).Milliseconds())
	if e.stats != nil {
		e.stats.RecordSequenceCompleted(runtimeMS)
	}
	if e.metrics != nil {
		e.metrics.RecordSequenceCompleted(req.SequenceName, time.Since(start))
	}
	e.emit("sequence:completed", bus.Event{
		"sequenceName": req.SequenceName,
		"requestId":    req.RequestID,
		"runtimeMs":    runtimeMS,
	})

	return Result{Completed: true}
}

type beatOutcome struct {
	terminal  bool
	cancelled bool
	reason    string
	err       error
}

// runBeat executes a single beat according to its timing directive and
// applies its error-handling policy on failure. It returns a terminal
// outcome when the sequence must stop here.
func (e *Executor) runBeat(ctx context.Context, req *sequence.Request, ec *sequence.ExecutionContext, beat *sequence.Beat, handlers sequence.HandlerTable) beatOutcome {
	if beat.Timing.Kind == sequence.TimingDelayed && beat.Timing.DelayMS > 0 {
		timer := time.NewTimer(time.Duration(beat.Timing.DelayMS) * time.Millisecond)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return beatOutcome{terminal: true, cancelled: true, reason: "context cancelled during delay"}
		}
	}

	e.emit("beat:started", bus.Event{
		"sequenceName": req.SequenceName,
		"requestId":    req.RequestID,
		"beat":         beat.Beat,
		"event":        beat.Event,
	})

	beatData := mergeData(ec.Payload, beat.Data)

	handler, ok := handlers[beat.Event]
	var result any
	var err error
	if ok && handler != nil {
		result, err = handler(ctx, beatData, ec)
	}

	if err != nil {
		e.emit("beat:failed", bus.Event{
			"sequenceName": req.SequenceName,
			"requestId":    req.RequestID,
			"beat":         beat.Beat,
			"event":        beat.Event,
			"error":        err.Error(),
		})
		if e.stats != nil {
			e.stats.RecordError()
		}

		switch beat.ErrorHandling {
		case sequence.ErrorContinue:
			appendPayloadError(ec.Payload, beat.Event, err)
		case sequence.ErrorAbortSequence:
			return beatOutcome{terminal: true, reason: "abort-sequence", err: err}
		default: // ErrorStop and any unrecognized policy fail closed.
			return beatOutcome{terminal: true, reason: "handler-error", err: err}
		}
	} else {
		if merged, ok := result.(map[string]any); ok {
			mergeInto(ec.Payload, merged)
		}
		e.emit("beat:completed", bus.Event{
			"sequenceName": req.SequenceName,
			"requestId":    req.RequestID,
			"beat":         beat.Beat,
			"event":        beat.Event,
			"result":       result,
		})
		e.emit(beat.Event, bus.Event{
			"requestId":     req.RequestID,
			"instanceId":    ec.InstanceID,
			"movementIndex": ec.MovementIndex,
			"beatIndex":     ec.BeatIndex,
			"payload":       ec.Payload,
			"sequence":      ec.Sequence,
			"executionType": ec.ExecutionType,
			"priority":      ec.Priority,
			"symphonyName":  ec.SymphonyName,
			"resourceId":    ec.ResourceID,
			"result":        result,
		})
	}

	if e.checkPreempted(req) {
		return beatOutcome{terminal: true, cancelled: true, reason: "preempted"}
	}
	return beatOutcome{}
}

func (e *Executor) checkPreempted(req *sequence.Request) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preempt && e.current == req.ResourceID
}

func (e *Executor) finishFailed(req *sequence.Request, seqName, reason string, err error) {
	event := bus.Event{
		"sequenceName": req.SequenceName,
		"requestId":    req.RequestID,
		"reason":       reason,
	}
	if err != nil {
		event["error"] = err.Error()
	}
	e.emit("sequence:failed", event)
	if e.metrics != nil {
		e.metrics.RecordSequenceFailed(seqName, reason)
	}
}

func (e *Executor) finishCancelled(req *sequence.Request, reason string) {
	e.emit("sequence:cancelled", bus.Event{
		"sequenceName": req.SequenceName,
		"requestId":    req.RequestID,
		"reason":       reason,
	})
	if e.stats != nil {
		e.stats.RecordCancelled()
	}
	if e.metrics != nil {
		e.metrics.RecordSequenceCancelled(req.SequenceName, reason)
	}
}

func (e *Executor) emit(topic string, event bus.Event) {
	e.eventBus.Emit(topic, event)
}

func (e *Executor) startLongRunWatchdog(req *sequence.Request, start time.Time) chan struct{} {
	done := make(chan struct{})
	if e.longRunWarning <= 0 || e.health == nil {
		return done
	}
	go func() {
		timer := time.NewTimer(e.longRunWarning)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			e.health.UpdateDegraded("executor", fmt.Sprintf(
				"sequence %s has run for over %s", req.SequenceName, time.Since(start)))
		}
	}()
	return done
}

func mergeData(payload map[string]any, beatData map[string]any) map[string]any {
	merged := make(map[string]any, len(payload)+len(beatData))
	for k, v := range payload {
		merged[k] = v
	}
	for k, v := range beatData {
		merged[k] = v
	}
	return merged
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

func appendPayloadError(payload map[string]any, event string, err error) {
	errs, _ := payload["_errors"].([]any)
	errs = append(errs, map[string]any{"event": event, "error": err.Error()})
	payload["_errors"] = errs
}
