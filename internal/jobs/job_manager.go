package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleCheckoutCleanupJob *StaleCheckoutCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	deleteStaleCheckouts StaleCheckoutsDeleter,
	staleCheckoutSchedule string,
	staleCheckoutTTL time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleCheckoutCleanupJob: NewStaleCheckoutCleanupJob(deleteStaleCheckouts, staleCheckoutSchedule, staleCheckoutTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleCheckoutCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale checkout cleanup job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleCheckoutCleanupJob.Stop()
}
