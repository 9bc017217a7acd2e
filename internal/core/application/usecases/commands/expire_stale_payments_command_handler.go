package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ExpireStalePaymentsCommandHandler cancels orders stuck awaiting payment
// past their time-to-live. Cancellations go through the transition executor
// as a system actor with an explicit reason, so the history ledger records
// why the order was closed.
type ExpireStalePaymentsCommandHandler struct {
	uowFactory UoWFactory
	transition RequestTransitionCommandHandler
	now        func() time.Time
}

// NewExpireStalePaymentsCommandHandler creates the stale payment expiry sweep.
func NewExpireStalePaymentsCommandHandler(
	uowFactory UoWFactory,
	transition RequestTransitionCommandHandler,
	now func() time.Time,
) ExpireStalePaymentsCommandHandler {
	return ExpireStalePaymentsCommandHandler{
		uowFactory: uowFactory,
		transition: transition,
		now:        now,
	}
}

// Handle runs one sweep. An order is stale when its status has not changed
// for at least the command's TTL.
func (h ExpireStalePaymentsCommandHandler) Handle(
	ctx context.Context, cmd ExpireStalePaymentsCommand,
) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	uow := h.uowFactory.Create()
	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.PendingPayment)
	if err != nil {
		return SweepReport{}, err
	}

	deadline := h.now().Add(-cmd.TTL())
	report := SweepReport{Scanned: len(pending)}
	for _, ord := range pending {
		if ord.StatusUpdatedAt().After(deadline) {
			report.Skipped++
			continue
		}

		transitionCmd, cmdErr := NewRequestTransitionCommand(
			ord.ID(), order.Cancelled, kernel.UUID{}, order.RoleSystem, "payment window expired",
		)
		if cmdErr != nil {
			report.Skipped++
			continue
		}
		transitionCmd = transitionCmd.WithExpectedStatus(order.PendingPayment)

		if result, trErr := h.transition.Handle(ctx, transitionCmd); trErr != nil || !result.Success {
			report.Skipped++
			continue
		}
		report.Transitioned++
	}

	return report, nil
}
