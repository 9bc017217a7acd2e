package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for the append-only
// status history ledger.
//
// Append is called only by the transition executor inside its transaction
// (plus once at order creation for the synthetic initial entry); the ledger
// is never exposed for direct external mutation. Entries are immutable.
type HistoryRepository interface {
	// Append records one history entry for the order.
	Append(ctx context.Context, orderID kernel.UUID, entry order.HistoryEntry) error

	// GetByOrder retrieves the full history of an order ordered by
	// timestamp ascending. The sequence is gap-free relative to every
	// committed transition of that order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error)
}
