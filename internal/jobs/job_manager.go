package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/pkg/ratelimit"
)

// Schedules carries the cron specs and timings for all background jobs.
type Schedules struct {
	// PaymentConfirmation is the cron spec for the payment confirmation sweep.
	PaymentConfirmation string
	// PaymentExpiry is the cron spec for the stale payment expiry sweep.
	PaymentExpiry string
	// PaymentTTL is how long an order may await payment before cancellation.
	PaymentTTL time.Duration
	// LimiterPrune is the cron spec for rate-limiter window pruning.
	LimiterPrune string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	paymentConfirmationJob *PaymentConfirmationJob
	paymentExpiryJob       *PaymentExpiryJob
	limiterPruneJob        *LimiterPruneJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	confirmPaidHandler commands.ConfirmPaidOrdersCommandHandler,
	expireStaleHandler commands.ExpireStalePaymentsCommandHandler,
	limiter *ratelimit.ActorLimiter,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentConfirmationJob: NewPaymentConfirmationJob(confirmPaidHandler, schedules.PaymentConfirmation, logger),
		paymentExpiryJob:       NewPaymentExpiryJob(expireStaleHandler, schedules.PaymentExpiry, schedules.PaymentTTL, logger),
		limiterPruneJob:        NewLimiterPruneJob(limiter, schedules.LimiterPrune, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentConfirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment confirmation job: %w", err)
	}

	if err := jm.paymentExpiryJob.Start(); err != nil {
		jm.paymentConfirmationJob.Stop()
		return fmt.Errorf("failed to start payment expiry job: %w", err)
	}

	if err := jm.limiterPruneJob.Start(); err != nil {
		jm.paymentExpiryJob.Stop()
		jm.paymentConfirmationJob.Stop()
		return fmt.Errorf("failed to start limiter prune job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.limiterPruneJob.Stop()
	jm.paymentExpiryJob.Stop()
	jm.paymentConfirmationJob.Stop()
}
