package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// Besides persisting the aggregate it seeds the history ledger with one
// synthetic entry carrying the creation timestamp, so that timelines start
// at the initial status even though the transition executor never produced
// an entry for it.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// The clock is injected so tests can pin timestamps.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, now func() time.Time) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the order creation command.
// Persists the order and its synthetic initial history entry in one
// transaction, rolled back together on any error.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	createdAt := h.now()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.UserID(), cmd.RestaurantID(), cmd.AwaitingPayment(), createdAt,
	)
	if err != nil {
		return err
	}

	seedEntry, err := order.NewHistoryEntry(newOrder.Status(), createdAt, nil, "")
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, newOrder.ID(), seedEntry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
