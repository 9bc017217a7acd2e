package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and acquires the per-order row lock
	// for the duration of the surrounding transaction. The lock wait is
	// bounded by the context deadline; the transition executor maps a
	// deadline expiry to a conflict rather than blocking indefinitely.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not in a terminal status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	// Used by the payment sweep jobs to find pending_payment orders.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
