// Package jobs provides scheduled background tasks for the production
// execution engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reminder scans of the shop floor.
//
// # Available Jobs
//
// 1. OpenJobReminderJob - Runs every minute and reminds the floor about open
// job steps that stay unclaimed across consecutive scans
// 2. OutwardOverdueJob - Runs every minute and chases vendor batches that
// were dispatched past the configured duration without a recorded return
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(openJobsHandler, overdueHandler, notifier, 7*24*time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs are read-only scans that only publish notifications; they never
// mutate core state. A failed scan or publish is logged and retried on the
// next tick, and failed job starts will stop any already running jobs.
package jobs
