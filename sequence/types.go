// Package sequence defines the orchestration runtime's data model: sequences,
// movements, beats, handler tables, and the requests/contexts that flow
// through admission and execution.
package sequence

import (
	"context"
	"time"

	"github.com/c360/musicalconductor/bus"
)

// Priority is a play request's scheduling class.
type Priority string

const (
	PriorityHigh    Priority = "HIGH"
	PriorityNormal  Priority = "NORMAL"
	PriorityChained Priority = "CHAINED"
)

// Valid reports whether p is one of the three recognized priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityNormal, PriorityChained:
		return true
	}
	return false
}

// TimingKind selects when a beat's handler runs relative to the beat before it.
type TimingKind string

const (
	TimingImmediate TimingKind = "IMMEDIATE"
	TimingAfterBeat TimingKind = "AFTER_BEAT"
	TimingDelayed   TimingKind = "DELAYED"
)

// Timing is a beat's scheduling directive. DelayMS only applies to
// TimingDelayed, measured from the previous beat's completion.
type Timing struct {
	Kind    TimingKind
	DelayMS int64
}

// Valid reports whether the timing directive is well-formed.
func (t Timing) Valid() bool {
	switch t.Kind {
	case TimingImmediate, TimingAfterBeat:
		return true
	case TimingDelayed:
		return t.DelayMS >= 0
	default:
		return false
	}
}

// ErrorHandling is a beat's policy for a handler error.
type ErrorHandling string

const (
	ErrorStop          ErrorHandling = "stop"
	ErrorContinue      ErrorHandling = "continue"
	ErrorAbortSequence ErrorHandling = "abort-sequence"
)

// Valid reports whether eh is one of the three recognized policies.
func (eh ErrorHandling) Valid() bool {
	switch eh {
	case ErrorStop, ErrorContinue, ErrorAbortSequence:
		return true
	}
	return false
}

// Beat is the atomic scheduled unit within a movement: it binds a logical
// event name to timing and error-handling directives, plus a static data
// payload merged under the runtime payload at execution time.
type Beat struct {
	Beat          int
	Event         string
	Title         string
	Description   string
	Dynamics      string
	Timing        Timing
	Data          map[string]any
	ErrorHandling ErrorHandling
}

// Movement groups an ordered run of beats. Purely organizational: it carries
// no isolation semantics of its own.
type Movement struct {
	Name        string
	Description string
	Beats       []Beat
}

// Sequence is a named, declarative workflow: an ordered list of movements,
// immutable once registered. Re-registering the same name replaces the prior
// binding atomically.
type Sequence struct {
	Name        string
	Description string
	Key         string
	Tempo       int
	Category    string
	Movements   []Movement
}

// Handler is the function a beat's event resolves to. It receives the
// accumulating beat data and the execution context, and may return a value
// to merge into the payload.
type Handler func(ctx context.Context, beatData map[string]any, ec *ExecutionContext) (any, error)

// HandlerTable maps a sequence's beat event names to their handlers. An event
// absent from the table is a pure bus emission: no handler body runs, but the
// event is still emitted.
type HandlerTable map[string]Handler

// ConflictResolution is the outcome of a resource-conflict check against the
// currently owned resources.
type ConflictResolution string

const (
	ResolutionAllow    ConflictResolution = "allow"
	ResolutionOverride ConflictResolution = "override"
	ResolutionQueue    ConflictResolution = "queue"
	ResolutionReject   ConflictResolution = "reject"
)

// ConflictResult is what the resource delegator returns for an admission
// check.
type ConflictResult struct {
	HasConflict bool
	Resolution  ConflictResolution
	Reason      string
}

// Request is an admitted play request, created once by the orchestrator and
// consumed exactly once by the executor.
type Request struct {
	SequenceName string
	Data         map[string]any
	Priority     Priority
	RequestID    string
	QueuedAt     time.Time

	InstanceID     string
	SymphonyName   string
	ResourceID     string
	ConflictResult ConflictResult
	SequenceHash   uint64
}

// ExecutionType distinguishes a beat invoked in the current cooperative turn
// from one resumed after a suspension point.
type ExecutionType string

const (
	ExecutionImmediate   ExecutionType = "IMMEDIATE"
	ExecutionConsecutive ExecutionType = "CONSECUTIVE"
)

// ExecutionContext is passed to every handler invocation. Payload accumulates
// across beats by shallow merge of each handler's mapping return value.
type ExecutionContext struct {
	Request       *Request
	Sequence      *Sequence
	MovementIndex int
	BeatIndex     int
	Payload       map[string]any
	EventBus      *bus.Bus
	ExecutionType ExecutionType
	Priority      Priority

	InstanceID   string
	SymphonyName string
	ResourceID   string
}
