// Package registry holds the orchestration runtime's name-keyed lookup
// tables: registered sequences and their handler tables.
package registry

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/c360/musicalconductor/errors"
	"github.com/c360/musicalconductor/sequence"
)

// SequenceRegistry maps sequence names to their definitions and handler
// tables. Registration validates structural conformance before mutating any
// state; registering an already-known name replaces the prior binding
// atomically.
type SequenceRegistry struct {
	mu        sync.RWMutex
	sequences map[string]sequence.Sequence
	handlers  map[string]sequence.HandlerTable
	validator *sequence.Validator
	logger    *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *SequenceRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SequenceRegistry{
		sequences: make(map[string]sequence.Sequence),
		handlers:  make(map[string]sequence.HandlerTable),
		validator: sequence.NewValidator(logger),
		logger:    logger,
	}
}

// reservedPrefixes are owned by lifecycle events on the bus; a sequence
// whose beat events collide with them is rejected at registration time.
var reservedPrefixes = []string{"sequence:", "movement:", "beat:"}

// Register validates seq and, on success, binds it and handlers under
// seq.Name, replacing any prior registration for that name.
func (r *SequenceRegistry) Register(seq sequence.Sequence, handlers sequence.HandlerTable) error {
	result := r.validator.Validate(&seq)
	if err := result.Err("SequenceRegistry", "Register"); err != nil {
		return err
	}

	if err := checkReservedEvents(seq); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequences[seq.Name] = seq
	if handlers == nil {
		handlers = sequence.HandlerTable{}
	}
	r.handlers[seq.Name] = handlers

	r.logger.Debug("sequence registered", "name", seq.Name, "movements", len(seq.Movements))
	return nil
}

// Unregister removes a sequence and its handler table. Unregistering an
// unknown name is a no-op.
func (r *SequenceRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sequences, name)
	delete(r.handlers, name)
}

// Get returns the named sequence.
func (r *SequenceRegistry) Get(name string) (sequence.Sequence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seq, ok := r.sequences[name]
	if !ok {
		return sequence.Sequence{}, errors.WrapInvalid(errors.ErrSequenceNotFound, "SequenceRegistry", "Get", name)
	}
	return seq, nil
}

// GetHandlers returns the named sequence's handler table.
func (r *SequenceRegistry) GetHandlers(name string) (sequence.HandlerTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers, ok := r.handlers[name]
	if !ok {
		return nil, errors.WrapInvalid(errors.ErrSequenceNotFound, "SequenceRegistry", "GetHandlers", name)
	}
	return handlers, nil
}

// Has reports whether name is currently registered.
func (r *SequenceRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sequences[name]
	return ok
}

// GetNames returns every registered sequence name, sorted.
func (r *SequenceRegistry) GetNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sequences))
	for name := range r.sequences {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkReservedEvents(seq sequence.Sequence) error {
	for _, mv := range seq.Movements {
		for _, beat := range mv.Beats {
			for _, prefix := range reservedPrefixes {
				if hasPrefix(beat.Event, prefix) {
					return errors.WrapInvalid(errors.ErrValidationFailed, "SequenceRegistry", "Register",
						"beat event \""+beat.Event+"\" collides with reserved prefix \""+prefix+"\"")
				}
			}
		}
	}
	return nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
