// Package jobs provides scheduled background tasks for the shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleCheckoutCleanupJob - deletes checkouts whose last change is older than the
// configured TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(&deleteStaleCheckoutsHandler, "0 0 * * * *", 30*24*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field. The cleanup runs hourly
// unless configured otherwise.
//
// # Error Handling
//
// - Failed runs are logged and retried on the next tick
// - A malformed schedule fails StartAll
package jobs
