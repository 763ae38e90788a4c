// Package resource implements the resource-conflict delegator: the
// ownership table that serializes execution against the same external
// object and the five-rule arbitration table that decides whether an
// incoming request is allowed, overrides the incumbent, queues behind it,
// or is rejected outright.
package resource

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/c360/musicalconductor/sequence"
)

// Ownership describes who currently holds a resource.
type Ownership struct {
	InstanceID   string
	SymphonyName string
	Priority     sequence.Priority
	Since        time.Time
}

// StrictModeChecker reports whether a resource requires strict-mode
// rejection instead of queuing. config.Config satisfies this via
// IsStrictModeResource.
type StrictModeChecker interface {
	IsStrictModeResource(resourceID string) bool
}

// Delegator owns the resource ownership table and arbitrates conflicts. All
// mutation happens on the single execution thread that drives admission and
// drain, so a plain mutex (rather than an atomic map) is sufficient.
type Delegator struct {
	mu        sync.Mutex
	ownership map[string]Ownership
	limiters  map[string]*rate.Limiter
	rateLimit float64
	strict    StrictModeChecker
	logger    *slog.Logger
}

// noStrictMode rejects nothing; used when the caller has no strict-mode
// configuration.
type noStrictMode struct{}

func (noStrictMode) IsStrictModeResource(string) bool { return false }

// New creates a resource delegator. rateLimit caps HIGH-priority overrides
// per resource per second; 0 disables the limiter. A nil strict reports no
// resource as strict.
func New(rateLimit float64, strict StrictModeChecker, logger *slog.Logger) *Delegator {
	if strict == nil {
		strict = noStrictMode{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegator{
		ownership: make(map[string]Ownership),
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rateLimit,
		strict:    strict,
		logger:    logger,
	}
}

// CheckConflict evaluates the five-rule arbitration table for an incoming
// request against resourceID's current owner, if any.
func (d *Delegator) CheckConflict(resourceID, instanceID, symphonyName string, priority sequence.Priority) sequence.ConflictResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	owner, owned := d.ownership[resourceID]

	// Rule 1: no current owner.
	if !owned {
		return sequence.ConflictResult{Resolution: sequence.ResolutionAllow, Reason: "no current owner"}
	}

	// Rule 2: re-entry by the same instance.
	if owner.InstanceID == instanceID {
		return sequence.ConflictResult{Resolution: sequence.ResolutionAllow, Reason: "re-entrant owner"}
	}

	// Rule 3: higher-priority override.
	if priority == sequence.PriorityHigh && owner.Priority != sequence.PriorityHigh {
		if d.allowOverride(resourceID) {
			return sequence.ConflictResult{
				HasConflict: true,
				Resolution:  sequence.ResolutionOverride,
				Reason:      "higher priority preempts incumbent",
			}
		}
		d.logger.Warn("override rate limited, queuing instead", "resourceId", resourceID)
		return sequence.ConflictResult{
			HasConflict: true,
			Resolution:  sequence.ResolutionQueue,
			Reason:      "override rate limited",
		}
	}

	// Rule 4: chained request from the same symphony as the owner.
	if priority == sequence.PriorityChained && symphonyName == owner.SymphonyName {
		return sequence.ConflictResult{HasConflict: true, Resolution: sequence.ResolutionQueue, Reason: "chained to current owner"}
	}

	// Rule 5: default queue, reject only in strict mode.
	if d.strict.IsStrictModeResource(resourceID) {
		return sequence.ConflictResult{HasConflict: true, Resolution: sequence.ResolutionReject, Reason: "strict mode resource busy"}
	}
	return sequence.ConflictResult{HasConflict: true, Resolution: sequence.ResolutionQueue, Reason: "resource busy"}
}

// allowOverride reports whether an override of resourceID is currently
// permitted by the per-resource rate limiter. A zero rateLimit disables
// throttling entirely.
func (d *Delegator) allowOverride(resourceID string) bool {
	if d.rateLimit <= 0 {
		return true
	}
	limiter, ok := d.limiters[resourceID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rateLimit), 1)
		d.limiters[resourceID] = limiter
	}
	return limiter.Allow()
}

// TakeOwnership records resourceID as owned by instanceID, replacing any
// prior owner. Called on admission for allow/override, and on dequeue for a
// queued request that is about to execute.
func (d *Delegator) TakeOwnership(resourceID, instanceID, symphonyName string, priority sequence.Priority) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ownership[resourceID] = Ownership{
		InstanceID:   instanceID,
		SymphonyName: symphonyName,
		Priority:     priority,
		Since:        time.Now(),
	}
}

// Release clears resourceID's ownership if instanceID is still the owner.
// Releasing a resource already owned by someone else (e.g. because it was
// already overridden) is a no-op.
func (d *Delegator) Release(resourceID, instanceID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if owner, ok := d.ownership[resourceID]; ok && owner.InstanceID == instanceID {
		delete(d.ownership, resourceID)
	}
}

// OwnerOf returns the current owner of resourceID, if any.
func (d *Delegator) OwnerOf(resourceID string) (Ownership, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	owner, ok := d.ownership[resourceID]
	return owner, ok
}
