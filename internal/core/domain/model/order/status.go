package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a marketplace order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// Canonical forward order:
//
//	pending_payment ──> placed ──> confirmed ──> preparing ──> ready ──> out_for_delivery ──> delivered
//
// cancelled branches off from non-terminal statuses. delivered and
// cancelled are terminal: no outgoing transitions exist from them for
// any role.
//
// Status is a value object that provides string representations for
// persistence and display; the legal edges between statuses live in the
// StatusGraph, tagged by actor role.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status of an order awaiting payment
	// confirmation from the payment collaborator.
	PendingPayment

	// Placed indicates the customer has placed the order and payment is settled.
	Placed

	// Confirmed indicates the restaurant has accepted the order.
	Confirmed

	// Preparing indicates the kitchen has started working on the order.
	Preparing

	// Ready indicates the order is ready for courier pickup.
	Ready

	// OutForDelivery indicates a courier has picked up the order.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was cancelled.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their customer-facing
// string representations. These lowercase names are the canonical vocabulary
// used in persistence, API payloads and notification templates.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PendingPayment: "pending_payment",
		Placed:         "placed",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPayment: "pending_payment",
		Placed:         "placed",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		Ready:          "ready",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// forwardRank orders statuses along the canonical delivery progression.
// Cancelled has no rank: moving to it is a cancellation, never a rollback
// or forward step.
func forwardRank() map[Status]int {
	//nolint:exhaustive // Cancelled is intentionally excluded from the linear order
	return map[Status]int{
		PendingPayment: 0,
		Placed:         1,
		Confirmed:      2,
		Preparing:      3,
		Ready:          4,
		OutForDelivery: 5,
		Delivered:      6,
	}
}

// StatusFromString parses a canonical lowercase status name.
//
// Returns:
//   - the matching Status for a known name
//   - an error for unknown names, including the offending value
//
// Used when reconstructing statuses from persistence and API payloads.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are the eight members of the canonical set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lowercase name of the status.
//
// Returns "unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Terminal statuses are absolute: no role, including admin, may re-open them.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}
