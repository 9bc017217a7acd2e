package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// HistoryEntry is an immutable audit record of one successful transition.
// Entries are created only when a transition commits (plus one synthetic
// entry seeded from the order's creation timestamp) and are never mutated
// or deleted afterwards.
type HistoryEntry struct {
	status     Status
	occurredAt time.Time

	// actorID is nil for system-initiated transitions.
	actorID *kernel.UUID

	// reason is empty for ordinary forward transitions and mandatory for
	// rollbacks; the validator enforces that rule before an entry is made.
	reason string
}

// NewHistoryEntry creates a validated history entry.
//
// Parameters:
//   - status: the status the order moved to (must be valid)
//   - occurredAt: when the transition committed (must not be zero)
//   - actorID: the acting identity, nil for system-initiated transitions
//   - reason: optional justification, recorded verbatim
func NewHistoryEntry(status Status, occurredAt time.Time, actorID *kernel.UUID, reason string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if occurredAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("occurredAt")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return HistoryEntry{}, err
		}
	}

	return HistoryEntry{
		status:     status,
		occurredAt: occurredAt,
		actorID:    actorID,
		reason:     reason,
	}, nil
}

// Status returns the status recorded by this entry.
func (e HistoryEntry) Status() Status {
	return e.status
}

// OccurredAt returns the timestamp of the transition.
func (e HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// ActorID returns the acting identity, or nil for system-initiated transitions.
func (e HistoryEntry) ActorID() *kernel.UUID {
	return e.actorID
}

// Reason returns the recorded justification, empty when none was given.
func (e HistoryEntry) Reason() string {
	return e.reason
}

// CollapseTimeline folds an ordered history into the sequence rendered on
// customer-facing timelines: entries sharing the same status collapse to
// their first occurrence. This tolerates the synthetic initial entry seeded
// from the order's creation timestamp, which is not produced by the
// transition executor and may duplicate a committed status.
func CollapseTimeline(entries []HistoryEntry) []HistoryEntry {
	collapsed := make([]HistoryEntry, 0, len(entries))
	seen := make(map[Status]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.status] {
			continue
		}
		seen[entry.status] = true
		collapsed = append(collapsed, entry)
	}
	return collapsed
}
