// Package historyrepo persists the append-only status history ledger.
// Entries are written only from within the transition executor's transaction
// (plus the synthetic entry seeded at order creation) and are never updated
// or deleted.
package historyrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents one immutable row of the order_history table.
// The serial id breaks ties between entries committed within clock
// resolution, keeping read order stable.
type HistoryEntryDTO struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	Status     int        `gorm:""`
	OccurredAt time.Time  `gorm:"index"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Reason     *string    `gorm:""`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a history entry to its database representation.
func fromDomain(orderID kernel.UUID, entry order.HistoryEntry) HistoryEntryDTO {
	var actorID *uuid.UUID
	if actor := entry.ActorID(); actor != nil {
		raw := actor.Bytes()
		actorID = &raw
	}

	var reason *string
	if r := entry.Reason(); r != "" {
		reason = &r
	}

	return HistoryEntryDTO{
		OrderID:    orderID.Bytes(),
		Status:     int(entry.Status()),
		OccurredAt: entry.OccurredAt(),
		ActorID:    actorID,
		Reason:     reason,
	}
}

// toDomain converts a database row to a history entry value object.
func toDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	var actorID *kernel.UUID
	if dto.ActorID != nil {
		a, err := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if err != nil {
			return order.HistoryEntry{}, err
		}
		actorID = &a
	}

	reason := ""
	if dto.Reason != nil {
		reason = *dto.Reason
	}

	return order.NewHistoryEntry(order.Status(dto.Status), dto.OccurredAt, actorID, reason)
}
