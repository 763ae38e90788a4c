package sequence

import (
	"log/slog"

	"github.com/c360/musicalconductor/errors"
)

// ValidationResult is the outcome of validating a sequence definition.
type ValidationResult struct {
	Status   string // "valid" or "errors"
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// ValidationIssue describes a single structural problem found in a sequence
// definition.
type ValidationIssue struct {
	Type          string
	Severity      string // "error" or "warning"
	ComponentName string
	Message       string
	Suggestions   []string
}

// Validator performs structural validation of sequence definitions before
// they are admitted to the registry.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a sequence validator.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// Validate performs the structural checks: non-empty names, non-empty
// movements and beats, contiguous 1-based beat numbering within a movement,
// known timing and error-handling values on every beat, and a positive
// tempo.
func (v *Validator) Validate(seq *Sequence) *ValidationResult {
	result := &ValidationResult{Status: "valid", Errors: []ValidationIssue{}, Warnings: []ValidationIssue{}}

	v.logger.Debug("validating sequence", "name", seq.Name, "movements", len(seq.Movements))

	if seq.Name == "" {
		result.addError("missing_name", "(none)", "sequence must have a non-empty name", nil)
	}
	if seq.Tempo <= 0 {
		result.addError("invalid_tempo", seq.Name, "tempo must be a positive integer", []string{
			"set tempo to a positive integer, e.g. 120",
		})
	}
	if len(seq.Movements) == 0 {
		result.addError("empty_sequence", seq.Name, "sequence must contain at least one movement", []string{
			"add a movement with at least one beat",
		})
		return result
	}

	for mi, mv := range seq.Movements {
		v.validateMovement(result, seq.Name, mi, mv)
	}

	return result
}

func (v *Validator) validateMovement(result *ValidationResult, seqName string, index int, mv Movement) {
	name := mv.Name
	if name == "" {
		name = "(unnamed movement)"
	}

	if mv.Name == "" {
		result.addError("missing_movement_name", seqName, "movement has no name", nil)
	}
	if len(mv.Beats) == 0 {
		result.addError("empty_movement", name, "movement must contain at least one beat", []string{
			"add at least one beat to the movement",
		})
		return
	}

	for bi, beat := range mv.Beats {
		expected := bi + 1
		if beat.Beat != expected {
			result.addError("non_contiguous_beats", name,
				"beat numbering must be contiguous and 1-based within a movement",
				[]string{"renumber beats starting at 1 with no gaps"})
		}
		if beat.Event == "" {
			result.addError("missing_beat_event", name, "beat has no event name", nil)
		}
		if !beat.Timing.Valid() {
			result.addError("unknown_timing", name, "beat has an unknown or invalid timing directive", []string{
				"use IMMEDIATE, AFTER_BEAT, or DELAYED with a non-negative delay",
			})
		}
		if !beat.ErrorHandling.Valid() {
			result.addError("unknown_error_handling", name, "beat has an unknown errorHandling value", []string{
				"use stop, continue, or abort-sequence",
			})
		}
	}
}

func (r *ValidationResult) addError(issueType, component, message string, suggestions []string) {
	r.Status = "errors"
	r.Errors = append(r.Errors, ValidationIssue{
		Type:          issueType,
		Severity:      "error",
		ComponentName: component,
		Message:       message,
		Suggestions:   suggestions,
	})
}

// Err collapses a ValidationResult with errors into a single wrapped error,
// or returns nil when the result is valid.
func (r *ValidationResult) Err(component, method string) error {
	if r.Status != "errors" || len(r.Errors) == 0 {
		return nil
	}
	return errors.WrapInvalid(errors.ErrValidationFailed, component, method, r.Errors[0].Message)
}
