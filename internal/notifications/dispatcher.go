// Package notifications translates committed status transitions into outward
// notifications. Delivery is best-effort: a failed or slow notification never
// affects the transition that produced it.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// templateKeys maps each target status to the notification template rendered
// for it. This mapping is data, not control logic, and can be replaced
// without touching the transition executor.
func templateKeys() map[order.Status]string {
	return map[order.Status]string{
		order.PendingPayment: "order_awaiting_payment",
		order.Placed:         "order_placed",
		order.Confirmed:      "order_confirmed_by_restaurant",
		order.Preparing:      "order_being_prepared",
		order.Ready:          "order_ready_for_pickup",
		order.OutForDelivery: "order_out_for_delivery",
		order.Delivered:      "order_delivered",
		order.Cancelled:      "order_cancelled",
	}
}

// Dispatcher fans a committed transition out to everyone involved with the
// order. Dispatch is fire-and-forget; each call runs in its own goroutine
// bounded by sendTimeout, and delivery failures are logged, never propagated.
type Dispatcher struct {
	sender      ports.NotificationSender
	logger      *slog.Logger
	sendTimeout time.Duration

	// wg tracks in-flight deliveries so tests and shutdown can drain them.
	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through the given sender.
func NewDispatcher(sender ports.NotificationSender, logger *slog.Logger, sendTimeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		logger:      logger.With("component", "side_effect_dispatcher"),
		sendTimeout: sendTimeout,
	}
}

// Dispatch emits one notification per recipient for a committed transition.
// Returns immediately; the caller of the transition executor is never blocked
// on notification delivery.
func (d *Dispatcher) Dispatch(orderID kernel.UUID, oldStatus, newStatus order.Status, recipients []kernel.UUID) {
	templateKey, ok := templateKeys()[newStatus]
	if !ok {
		d.logger.Warn("no notification template for status",
			"order_id", orderID.String(), "status", newStatus.String())
		return
	}

	notificationContext := map[string]string{
		"order_id":   orderID.String(),
		"old_status": oldStatus.String(),
		"new_status": newStatus.String(),
	}

	for _, recipient := range recipients {
		notification := ports.Notification{
			RecipientID: recipient.String(),
			TemplateKey: templateKey,
			Context:     notificationContext,
		}

		d.wg.Add(1)
		go func() {
			defer d.wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
			defer cancel()

			if err := d.sender.Send(ctx, notification); err != nil {
				d.logger.ErrorContext(ctx, "notification delivery failed",
					"order_id", orderID.String(),
					"recipient", notification.RecipientID,
					"template", notification.TemplateKey,
					"error", err)
			}
		}()
	}
}

// Wait blocks until all in-flight deliveries finish.
// Used on shutdown and in tests; production callers never wait.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
