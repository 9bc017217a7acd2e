package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentExpiryJob periodically cancels orders that have been awaiting
// payment longer than the configured time-to-live.
type PaymentExpiryJob struct {
	handler  commands.ExpireStalePaymentsCommandHandler
	schedule string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentExpiryJob creates the stale payment expiry job.
// The schedule is a six-field cron spec with seconds resolution.
func NewPaymentExpiryJob(
	handler commands.ExpireStalePaymentsCommandHandler,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_expiry_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *PaymentExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireStalePaymentsCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment expiry sweep misconfigured", "error", cmdErr)
			return
		}

		report, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Payment expiry sweep failed", "error", handleErr)
			return
		}

		if report.Transitioned > 0 {
			j.logger.InfoContext(ctx, "Payment expiry sweep finished",
				"scanned", report.Scanned,
				"cancelled", report.Transitioned,
				"skipped", report.Skipped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment expiry job started",
		"schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Stop stops the payment expiry job.
func (j *PaymentExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment expiry job stopped")
}
