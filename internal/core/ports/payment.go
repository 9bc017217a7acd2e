package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// PaymentProvider reports settlement status for orders awaiting payment.
// The payment collaborator itself lives outside this service; the sweep job
// only asks whether a given order's payment has settled.
type PaymentProvider interface {
	// IsSettled reports whether payment for the order has been collected.
	IsSettled(ctx context.Context, orderID kernel.UUID) (bool, error)
}
