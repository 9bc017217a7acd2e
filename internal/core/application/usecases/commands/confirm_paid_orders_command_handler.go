package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// SweepReport summarizes one pass of a background sweep over orders
// awaiting payment.
type SweepReport struct {
	// Scanned is the number of orders inspected.
	Scanned int
	// Transitioned is the number of orders successfully moved.
	Transitioned int
	// Skipped counts orders left untouched: payment not settled yet, not
	// stale yet, or lost races with a concurrent transition.
	Skipped int
}

// ConfirmPaidOrdersCommandHandler sweeps orders awaiting payment and moves
// the settled ones forward. Every move goes through the transition executor
// as a system actor, so locking, validation and history append behave
// exactly as they do for interactive callers.
type ConfirmPaidOrdersCommandHandler struct {
	uowFactory UoWFactory
	payments   ports.PaymentProvider
	transition RequestTransitionCommandHandler
}

// NewConfirmPaidOrdersCommandHandler creates the payment confirmation sweep.
func NewConfirmPaidOrdersCommandHandler(
	uowFactory UoWFactory,
	payments ports.PaymentProvider,
	transition RequestTransitionCommandHandler,
) ConfirmPaidOrdersCommandHandler {
	return ConfirmPaidOrdersCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
		transition: transition,
	}
}

// Handle runs one sweep. Orders that lose a race with a concurrent
// transition are skipped and picked up again on the next pass.
func (h ConfirmPaidOrdersCommandHandler) Handle(
	ctx context.Context, cmd ConfirmPaidOrdersCommand,
) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	uow := h.uowFactory.Create()
	pending, err := uow.OrderRepository().GetAllInStatus(ctx, order.PendingPayment)
	if err != nil {
		return SweepReport{}, err
	}

	report := SweepReport{Scanned: len(pending)}
	for _, ord := range pending {
		settled, settleErr := h.payments.IsSettled(ctx, ord.ID())
		if settleErr != nil || !settled {
			report.Skipped++
			continue
		}

		transitionCmd, cmdErr := NewRequestTransitionCommand(
			ord.ID(), order.Confirmed, kernel.UUID{}, order.RoleSystem, "",
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
