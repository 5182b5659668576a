package jobs

import (
	"context"
	"log/slog"
	"time"

	"shop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultStaleCheckoutSchedule runs the cleanup at the top of every hour.
const DefaultStaleCheckoutSchedule = "0 0 * * * *"

// StaleCheckoutsDeleter is satisfied by commands.DeleteStaleCheckoutsCommandHandler.
type StaleCheckoutsDeleter interface {
	Handle(ctx context.Context, cmd commands.DeleteStaleCheckoutsCommand) (int64, error)
}

// StaleCheckoutCleanupJob deletes checkouts nobody touched for longer than ttl.
type StaleCheckoutCleanupJob struct {
	handler  StaleCheckoutsDeleter
	schedule string
	ttl      time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleCheckoutCleanupJob creates the job. schedule is a six field cron expression
// with seconds; an empty one means DefaultStaleCheckoutSchedule.
func NewStaleCheckoutCleanupJob(
	handler StaleCheckoutsDeleter,
	schedule string,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleCheckoutCleanupJob {
	if schedule == "" {
		schedule = DefaultStaleCheckoutSchedule
	}
	return &StaleCheckoutCleanupJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_checkout_cleanup_job"),
	}
}

// Start schedules the cleanup. It fails on a malformed schedule.
func (j *StaleCheckoutCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale checkout cleanup job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Stop stops the schedule and waits for a running cleanup to return.
func (j *StaleCheckoutCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale checkout cleanup job stopped")
}

func (j *StaleCheckoutCleanupJob) run(ctx context.Context) {
	cmd, err := commands.NewDeleteStaleCheckoutsCommand(j.now().UTC().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale checkout cleanup job failed", "error", err)
		return
	}

	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale checkout cleanup job failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Deleted stale checkouts", "count", deleted)
	}
}
