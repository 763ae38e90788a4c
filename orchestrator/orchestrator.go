// Package orchestrator implements SequenceOrchestrator: the admission
// pipeline, queue drainer, and public facade that together turn play
// requests into serialized, resource-aware executions.
package orchestrator

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360/musicalconductor/bus"
	"github.com/c360/musicalconductor/dedup"
	"github.com/c360/musicalconductor/errors"
	"github.com/c360/musicalconductor/executor"
	"github.com/c360/musicalconductor/health"
	"github.com/c360/musicalconductor/metric"
	"github.com/c360/musicalconductor/queue"
	"github.com/c360/musicalconductor/registry"
	"github.com/c360/musicalconductor/resource"
	"github.com/c360/musicalconductor/sequence"
	"github.com/c360/musicalconductor/sequtil"
	"github.com/c360/musicalconductor/stats"
)

// StartResult is what Play returns to its caller.
type StartResult struct {
	RequestID   string
	Success     bool
	IsDuplicate bool
	Reason      string
}

// PluginRegistration is what RegisterPlugin returns.
type PluginRegistration struct {
	Registered bool
	Name       string
}

// Orchestrator owns the admission pipeline and the queue drainer. Construct
// one with New and drive its lifecycle with Start/Stop; SetDefault/Default
// offer a process-wide singleton for callers that don't want to thread an
// instance through their own call graph.
type Orchestrator struct {
	bus       *bus.Bus
	registry  *registry.SequenceRegistry
	dedup     *dedup.DuplicationDetector
	delegator *resource.Delegator
	queue     *queue.ExecutionQueue
	executor  *executor.Executor
	stats     *stats.Manager
	metrics   *metric.Metrics
	health    *health.Monitor
	logger    *slog.Logger

	kick chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan error
}

// Deps bundles the orchestrator's collaborators, so New takes one argument
// instead of a long, easily-misordered parameter list.
type Deps struct {
	Bus       *bus.Bus
	Registry  *registry.SequenceRegistry
	Dedup     *dedup.DuplicationDetector
	Delegator *resource.Delegator
	Queue     *queue.ExecutionQueue
	Executor  *executor.Executor
	Stats     *stats.Manager
	Metrics   *metric.Metrics
	Health    *health.Monitor
	Logger    *slog.Logger
}

// New creates an orchestrator over the given collaborators.
func New(deps Deps) *Orchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		bus:       deps.Bus,
		registry:  deps.Registry,
		dedup:     deps.Dedup,
		delegator: deps.Delegator,
		queue:     deps.Queue,
		executor:  deps.Executor,
		stats:     deps.Stats,
		metrics:   deps.Metrics,
		health:    deps.Health,
		logger:    logger,
		kick:      make(chan struct{}, 1),
	}
}

// Start launches the queue drainer in the background. It returns
// immediately; call Stop to shut the drainer down.
func (o *Orchestrator) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	o.cancel = cancel
	o.done = make(chan error, 1)
	done := o.done
	o.mu.Unlock()

	if o.health != nil {
		o.health.UpdateHealthy("orchestrator", "drain loop running")
	}

	go func() {
		g, gctx := errgroup.WithContext(loopCtx)
		g.Go(func() error { return o.drainLoop(gctx) })
		err := g.Wait()
		if o.health != nil {
			if err != nil && !stderrors.Is(err, context.Canceled) {
				o.health.UpdateUnhealthy("orchestrator", fmt.Sprintf("drain loop exited: %v", err))
			} else {
				o.health.UpdateDegraded("orchestrator", "drain loop stopped")
			}
		}
		select {
		case done <- err:
		default:
		}
	}()
}

// Stop cancels the drainer and waits up to timeout for it to exit.
func (o *Orchestrator) Stop(timeout time.Duration) error {
	o.mu.Lock()
	cancel := o.cancel
	done := o.done
	o.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case err := <-done:
		if err != nil && !stderrors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("orchestrator: timed out waiting for drainer shutdown")
	}
}

func (o *Orchestrator) drainLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-o.kick:
			o.drainAll(ctx)
		}
	}
}

func (o *Orchestrator) kickDrain() {
	select {
	case o.kick <- struct{}{}:
	default:
	}
}

// drainAll pops and runs requests until the queue empties or the executor
// is already occupied; a handler failure inside one sequence never halts
// the drainer from moving to the next request.
func (o *Orchestrator) drainAll(ctx context.Context) {
	for {
		if o.executor.IsRunning() {
			return
		}
		req, ok := o.queue.Dequeue()
		if !ok {
			return
		}

		seq, err := o.registry.Get(req.SequenceName)
		if err != nil {
			o.bus.Emit("sequence:failed", bus.Event{
				"sequenceName": req.SequenceName,
				"requestId":    req.RequestID,
				"reason":       "missing-at-drain",
			})
			if o.stats != nil {
				o.stats.RecordError()
			}
			continue
		}
		handlers, _ := o.registry.GetHandlers(req.SequenceName)

		waitMS := float64(time.Since(req.QueuedAt).Milliseconds())
		if o.stats != nil {
			o.stats.UpdateQueueWaitTime(waitMS)
		}
		if o.metrics != nil {
			o.metrics.RecordQueueWaitTime(string(req.Priority), time.Since(req.QueuedAt))
			o.metrics.SetQueueDepth(string(req.Priority), o.queue.Size())
		}

		if req.ConflictResult.Resolution == sequence.ResolutionQueue {
			o.delegator.TakeOwnership(req.ResourceID, req.InstanceID, req.SymphonyName, req.Priority)
		}

		result := o.executor.Run(ctx, req, &seq, handlers)
		o.delegator.Release(req.ResourceID, req.InstanceID)

		if result.Err != nil {
			o.logger.Warn("sequence run ended with error", "sequenceName", req.SequenceName, "reason", result.Reason, "error", result.Err)
		}
	}
}

// Play admits a play request: validate, deduplicate, extract resource
// metadata, arbitrate against the resource delegator, and enqueue.
func (o *Orchestrator) Play(domain, sequenceName string, data map[string]any, priority sequence.Priority) (StartResult, error) {
	if priority == "" {
		priority = sequence.PriorityNormal
	}
	if !priority.Valid() {
		return StartResult{Success: false, Reason: "invalid-priority"},
			errors.WrapInvalid(errors.ErrValidationFailed, "SequenceOrchestrator", "Play", "unknown priority "+string(priority))
	}

	name := joinName(domain, sequenceName)

	if !o.registry.Has(name) {
		o.bus.Emit("sequence:failed", bus.Event{"sequenceName": name, "reason": "sequence-not-found"})
		return StartResult{Success: false, Reason: "sequence-not-found"},
			errors.WrapInvalid(errors.ErrSequenceNotFound, "SequenceOrchestrator", "Play", name)
	}

	check := sequtil.DeduplicateRequest(o.dedup, name, data, priority)
	if check.IsDuplicate {
		requestID := uuid.NewString() + "-duplicate"
		o.bus.Emit("sequence:cancelled", bus.Event{
			"sequenceName": name,
			"requestId":    requestID,
			"reason":       "duplicate-request",
		})
		if o.stats != nil {
			o.stats.RecordDuplicate()
		}
		if o.metrics != nil {
			o.metrics.RecordDuplicate(name)
		}
		return StartResult{RequestID: requestID, Success: false, IsDuplicate: true, Reason: "duplicate-request"}, nil
	}

	// Record before any further work to close the double-invocation race.
	// The underlying TTL window's Set almost never fails, but when it does
	// (classified transient by dedup.Record) it's worth a few quick retries
	// before giving up and logging - a dropped Record leaves the window
	// blind to this request's hash for the rest of its TTL.
	retryCfg := errors.DefaultRetryConfig()
	var recordErr error
	for attempt := 0; attempt < retryCfg.MaxRetries; attempt++ {
		if recordErr = o.dedup.Record(check.Hash); recordErr == nil {
			break
		}
		if !retryCfg.ShouldRetry(recordErr, attempt) {
			break
		}
		time.Sleep(retryCfg.BackoffDelay(attempt))
	}
	if recordErr != nil {
		o.logger.Warn("failed to record dedup hash", "sequenceName", name, "error", recordErr)
	}

	symphonyName := sequtil.ExtractSymphonyName(name)
	resourceID := sequtil.ExtractResourceId(name, data)
	instanceID := sequtil.CreateSequenceInstanceId(name, resourceID, "")

	conflict := o.delegator.CheckConflict(resourceID, instanceID, symphonyName, priority)
	if conflict.Resolution == sequence.ResolutionReject {
		o.bus.Emit("sequence:failed", bus.Event{"sequenceName": name, "reason": "resource-rejected"})
		return StartResult{Success: false, Reason: "resource-rejected"},
			errors.WrapInvalid(errors.ErrResourceRejected, "SequenceOrchestrator", "Play", resourceID)
	}

	if conflict.Resolution == sequence.ResolutionOverride {
		o.executor.Preempt(resourceID)
	}
	if conflict.Resolution == sequence.ResolutionAllow || conflict.Resolution == sequence.ResolutionOverride {
		o.delegator.TakeOwnership(resourceID, instanceID, symphonyName, priority)
	}

	req := &sequence.Request{
		SequenceName:   name,
		Data:           data,
		Priority:       priority,
		RequestID:      uuid.NewString(),
		QueuedAt:       time.Now(),
		InstanceID:     instanceID,
		SymphonyName:   symphonyName,
		ResourceID:     resourceID,
		ConflictResult: conflict,
		SequenceHash:   check.Hash,
	}

	if err := o.queue.Enqueue(req); err != nil {
		return StartResult{Success: false, Reason: "queue-full"}, err
	}

	if o.stats != nil {
		o.stats.RecordSequenceQueued()
	}
	if o.metrics != nil {
		o.metrics.RecordSequenceQueued(name, string(priority))
		o.metrics.SetQueueDepth(string(priority), o.queue.Size())
	}

	o.bus.Emit("sequence:queued", bus.Event{
		"sequenceName": name,
		"requestId":    req.RequestID,
		"priority":     string(priority),
		"queueLength":  o.queue.Size(),
	})

	o.kickDrain()

	return StartResult{RequestID: req.RequestID, Success: true}, nil
}

// Subscribe registers listener on the event bus. See bus.Bus.Subscribe.
func (o *Orchestrator) Subscribe(pattern string, listener bus.Listener) bus.Unsubscribe {
	return o.bus.Subscribe(pattern, listener)
}

// RegisterPlugin registers a sequence and its handlers, replacing any
// existing registration under the same name.
func (o *Orchestrator) RegisterPlugin(seq sequence.Sequence, handlers sequence.HandlerTable) (PluginRegistration, error) {
	if err := o.registry.Register(seq, handlers); err != nil {
		return PluginRegistration{}, err
	}
	return PluginRegistration{Registered: true, Name: seq.Name}, nil
}

// UnregisterPlugin removes a sequence and its handlers.
func (o *Orchestrator) UnregisterPlugin(name string) {
	o.registry.Unregister(name)
}

// GetStatistics returns a snapshot of the runtime's counters and
// distributions.
func (o *Orchestrator) GetStatistics() stats.Snapshot {
	return o.stats.Snapshot()
}

// GetQueueSnapshot returns the current queue contents, HIGH band first.
func (o *Orchestrator) GetQueueSnapshot() []*sequence.Request {
	return o.queue.Snapshot()
}

// GetRegisteredSequences returns every registered sequence name, sorted.
func (o *Orchestrator) GetRegisteredSequences() []string {
	return o.registry.GetNames()
}

func joinName(domain, sequenceName string) string {
	if domain == "" || strings.Contains(sequenceName, ".") {
		return sequenceName
	}
	return domain + "." + sequenceName
}
