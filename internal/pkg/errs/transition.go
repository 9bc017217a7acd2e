package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel error for status changes the
	// lifecycle graph does not permit for the acting role.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrMissingJustification is the sentinel error for rollback transitions
	// attempted without a reason.
	ErrMissingJustification = errors.New("missing justification")

	// ErrForbidden is the sentinel error for actors without standing over a
	// specific order. The message is deliberately generic so that ownership
	// of orders is not leaked to unauthorized callers.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is the sentinel error for transitions that lost a race:
	// the freshly locked order no longer matches the caller's view.
	// Callers should refresh the order and decide whether to retry.
	ErrConflict = errors.New("conflict")

	// ErrStorageUnavailable is the sentinel error for transient storage
	// failures. No partial write has occurred; callers may retry with backoff.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InvalidTransitionError reports a status change that is not permitted for the
// acting role from the current status.
type InvalidTransitionError struct {
	From string
	To   string
	Role string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge and role.
func NewInvalidTransitionError(from, to, role string) *InvalidTransitionError {
	return &InvalidTransitionError{
		From: from,
		To:   to,
		Role: role,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed for role %s",
		ErrInvalidTransition, e.From, e.To, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// MissingJustificationError reports a rollback transition attempted without a reason.
type MissingJustificationError struct {
	From string
	To   string
}

// NewMissingJustificationError creates a MissingJustificationError for the given rollback edge.
func NewMissingJustificationError(from, to string) *MissingJustificationError {
	return &MissingJustificationError{
		From: from,
		To:   to,
	}
}

func (e *MissingJustificationError) Error() string {
	return fmt.Sprintf("%s: rollback %s -> %s requires a reason", ErrMissingJustification, e.From, e.To)
}

func (e *MissingJustificationError) Unwrap() error {
	return ErrMissingJustification
}

// ConflictError reports that a transition lost a race against a concurrent
// actor: the authoritative status read under the per-order lock no longer
// matches the status the caller last observed.
type ConflictError struct {
	OrderID  string
	Expected string
	Actual   string
}

// NewConflictError creates a ConflictError describing the stale view.
func NewConflictError(orderID, expected, actual string) *ConflictError {
	return &ConflictError{
		OrderID:  orderID,
		Expected: expected,
		Actual:   actual,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: order %s is now %s (was %s when last observed)",
		ErrConflict, e.OrderID, e.Actual, e.Expected)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
