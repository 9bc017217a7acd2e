package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentConfirmationJob periodically sweeps orders awaiting payment and
// confirms the ones whose payment has settled.
type PaymentConfirmationJob struct {
	handler  commands.ConfirmPaidOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentConfirmationJob creates the payment confirmation sweep job.
// The schedule is a six-field cron spec with seconds resolution.
func NewPaymentConfirmationJob(
	handler commands.ConfirmPaidOrdersCommandHandler, schedule string, logger *slog.Logger,
) *PaymentConfirmationJob {
	return &PaymentConfirmationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_confirmation_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *PaymentConfirmationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewConfirmPaidOrdersCommand()

		report, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Payment confirmation sweep failed", "error", handleErr)
			return
		}

		if report.Transitioned > 0 {
			j.logger.InfoContext(ctx, "Payment confirmation sweep finished",
				"scanned", report.Scanned,
				"confirmed", report.Transitioned,
				"skipped", report.Skipped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment confirmation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the payment confirmation job.
func (j *PaymentConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment confirmation job stopped")
}
