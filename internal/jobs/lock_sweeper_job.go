package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"starmap/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultLockSweepSchedule runs the sweeper at the start of every minute.
const DefaultLockSweepSchedule = "0 * * * * *"

// LockSweeper removes expired order claims.
type LockSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepExpiredLocksCommand) (int64, error)
}

// LockSweeperJob periodically deletes claims left behind by runs that died
// or failed, so their orders can be delivered again.
type LockSweeperJob struct {
	handler  LockSweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLockSweeperJob creates the job. schedule is a six-field cron expression
// with seconds; an empty schedule means DefaultLockSweepSchedule.
func NewLockSweeperJob(handler LockSweeper, schedule string, logger *slog.Logger) *LockSweeperJob {
	if schedule == "" {
		schedule = DefaultLockSweepSchedule
	}
	return &LockSweeperJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "lock_sweeper_job"),
	}
}

// Start schedules the sweep.
func (j *LockSweeperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lock sweeper job started", "schedule", j.schedule)
	return nil
}

// RunOnce sweeps immediately and reports how many claims were removed.
// Failures are logged.
func (j *LockSweeperJob) RunOnce(ctx context.Context) int64 {
	n, err := j.handler.Handle(ctx, commands.NewSweepExpiredLocksCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Lock sweeper job failed", "error", err)
		return 0
	}
	return n
}

// Stop stops the schedule and waits for a running sweep to finish.
func (j *LockSweeperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Lock sweeper job stopped")
}
