package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	openJobReminderJob *OpenJobReminderJob
	outwardOverdueJob  *OutwardOverdueJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers and the notifier as dependencies; the jobs are
// read-only scans that never mutate core state.
func NewJobManager(
	openJobsHandler queries.GetOpenJobsQueryHandler,
	overdueHandler queries.GetOverdueOutwardStepsQueryHandler,
	notifier ports.Notifier,
	outwardOverdueAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		openJobReminderJob: NewOpenJobReminderJob(openJobsHandler, notifier, logger),
		outwardOverdueJob:  NewOutwardOverdueJob(overdueHandler, notifier, outwardOverdueAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.openJobReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start open job reminder job: %w", err)
	}

	if err := jm.outwardOverdueJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.openJobReminderJob.Stop()
		return fmt.Errorf("failed to start outward overdue job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.openJobReminderJob.Stop()
	jm.outwardOverdueJob.Stop()
}
