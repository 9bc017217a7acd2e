// Package jobs provides scheduled background tasks for the order lifecycle service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around orders awaiting payment.
//
// # Available Jobs
//
// 1. PaymentConfirmationJob - Sweeps orders awaiting payment and confirms the settled ones
// 2. PaymentExpiryJob - Cancels orders that have been awaiting payment longer than the TTL
// 3. LimiterPruneJob - Drops expired rate-limiter windows to keep memory bounded
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(confirmPaidHandler, expireStaleHandler, limiter, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// All schedules are six-field cron specs with seconds resolution, taken from
// configuration. Both payment sweeps drive their status changes through the
// transition executor as system actors, so they contend for the same
// per-order locks as interactive callers and lose races gracefully.
package jobs
