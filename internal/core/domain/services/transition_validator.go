package services

import (
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// ValidationResult is the outcome of a transition legality check.
//
// A rollback with a justification is valid but carries a warning; callers
// are expected to surface the warning to a human before confirming the
// transition.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// TransitionValidator decides whether a requested status change is legal
// for the acting role and classifies the edge.
//
// The validator is a pure function of its inputs and never queries storage.
// Any staleness between a validator check and the authoritative write is
// expected: the transition executor re-runs the validator against the
// freshly locked status before writing.
type TransitionValidator struct{}

// NewTransitionValidator creates a TransitionValidator.
func NewTransitionValidator() TransitionValidator {
	return TransitionValidator{}
}

// Validate checks the legality of moving from current to requested in the
// given role.
//
// Returns:
//   - a ValidationResult with human-readable errors and warnings
//   - a typed error classifying the failure: ErrInvalidTransition when the
//     edge is not in the graph for the role, ErrMissingJustification when a
//     rollback has no reason
//
// Validity is membership in the role's reachable set, so a repeated status
// (requested == current) is not a valid transition. The executor treats
// retried client requests as no-ops before consulting the validator.
func (v TransitionValidator) Validate(
	current, requested order.Status,
	role order.ActorRole,
	reason string,
) (ValidationResult, error) {
	if err := current.Validate(); err != nil {
		return failure(err.Error()), err
	}
	if err := requested.Validate(); err != nil {
		return failure(err.Error()), err
	}
	if err := role.Validate(); err != nil {
		return failure(err.Error()), err
	}

	if !order.CanTransition(current, requested, role) {
		err := errs.NewInvalidTransitionError(current.String(), requested.String(), role.String())
		return failure(err.Error()), err
	}

	if order.Classify(current, requested) == order.EdgeRollback {
		if strings.TrimSpace(reason) == "" {
			err := errs.NewMissingJustificationError(current.String(), requested.String())
			return failure(err.Error()), err
		}
		return ValidationResult{
			Valid: true,
			Warnings: []string{
				"rollback from " + current.String() + " to " + requested.String() +
					": confirm before applying",
			},
		}, nil
	}

	return ValidationResult{Valid: true}, nil
}

func failure(msg string) ValidationResult {
	return ValidationResult{
		Valid:  false,
		Errors: []string{msg},
	}
}
