package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler retrieves one order's status history from the
// ledger, ordered by timestamp ascending.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// GetOrderHistoryQueryResponse is one rendered history entry.
// ActorID is empty for system-initiated transitions.
type GetOrderHistoryQueryResponse struct {
	Status     order.Status
	OccurredAt time.Time
	ActorID    string
	Reason     string
}

// Handle executes the history query.
//
// Entries come back ordered by (occurred_at, id); the id tie-break keeps
// the sequence stable when two transitions commit within clock resolution.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var orderCount int64
	if err := h.db.WithContext(ctx).
		Table("orders").
		Where("id = ?", query.OrderID().Bytes()).
		Count(&orderCount).Error; err != nil {
		return nil, err
	}
	if orderCount == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			occurred_at,
			actor_id,
			reason
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]order.HistoryEntry, 0)
	for rows.Next() {
		var status int
		var occurredAt time.Time
		var actorID *uuid.UUID
		var reason *string

		if err = rows.Scan(&status, &occurredAt, &actorID, &reason); err != nil {
			return nil, err
		}

		var actor *kernel.UUID
		if actorID != nil {
			a, actorErr := kernel.UUIDFromBytes((*actorID)[:])
			if actorErr != nil {
				return nil, actorErr
			}
			actor = &a
		}

		entryReason := ""
		if reason != nil {
			entryReason = *reason
		}

		entry, entryErr := order.NewHistoryEntry(order.Status(status), occurredAt, actor, entryReason)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if query.Timeline() {
		entries = order.CollapseTimeline(entries)
	}

	responses := make([]GetOrderHistoryQueryResponse, 0, len(entries))
	for _, entry := range entries {
		resp := GetOrderHistoryQueryResponse{
			Status:     entry.Status(),
			OccurredAt: entry.OccurredAt(),
			Reason:     entry.Reason(),
		}
		if actor := entry.ActorID(); actor != nil {
			resp.ActorID = actor.String()
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
