package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/pkg/ratelimit"

	"github.com/robfig/cron/v3"
)

// LimiterPruneJob periodically drops expired rate-limiter windows so memory
// stays bounded with many distinct actors.
type LimiterPruneJob struct {
	limiter  *ratelimit.ActorLimiter
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLimiterPruneJob creates the rate-limiter pruning job.
// The schedule is a six-field cron spec with seconds resolution.
func NewLimiterPruneJob(limiter *ratelimit.ActorLimiter, schedule string, logger *slog.Logger) *LimiterPruneJob {
	return &LimiterPruneJob{
		limiter:  limiter,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "limiter_prune_job"),
	}
}

// Start begins pruning on the configured schedule.
func (j *LimiterPruneJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.limiter.Prune()
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Limiter prune job started", "schedule", j.schedule)
	return nil
}

// Stop stops the limiter prune job.
func (j *LimiterPruneJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Limiter prune job stopped")
}
