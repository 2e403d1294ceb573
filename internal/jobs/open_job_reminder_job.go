package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OpenJobReminderJob reminds the shop floor about open job steps that
// stay unclaimed. A step seen on two consecutive scans has been waiting
// at least a full scan interval and gets one reminder; claiming it
// clears the bookkeeping.
type OpenJobReminderJob struct {
	handler  queries.GetOpenJobsQueryHandler
	notifier ports.Notifier
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	seen     map[string]bool
	notified map[string]bool
}

// NewOpenJobReminderJob creates a reminder job scanning the open jobs
// listing every minute.
func NewOpenJobReminderJob(
	handler queries.GetOpenJobsQueryHandler,
	notifier ports.Notifier,
	logger *slog.Logger,
) *OpenJobReminderJob {
	return &OpenJobReminderJob{
		handler:  handler,
		notifier: notifier,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "open_job_reminder_job"),
		seen:     make(map[string]bool),
		notified: make(map[string]bool),
	}
}

// Start begins the reminder job, running at the top of every minute.
func (j *OpenJobReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Open job reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Open job reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *OpenJobReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Open job reminder job stopped")
}

func (j *OpenJobReminderJob) run(ctx context.Context) error {
	listings, err := j.handler.Handle(ctx, queries.NewGetOpenJobsQuery())
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := make(map[string]bool, len(listings))
	for _, listing := range listings {
		key := fmt.Sprintf("%s/%d", listing.JobCardID, listing.StepIndex)
		current[key] = true

		if j.notified[key] {
			continue
		}
		if !j.seen[key] {
			j.seen[key] = true
			continue
		}

		notification := ports.Notification{
			Kind:    "open_job_reminder",
			Subject: listing.JobCardID.String(),
			Message: fmt.Sprintf("open job %q (%d pcs) is still unclaimed", listing.StepName, listing.Quantity),
		}
		if err := j.notifier.Publish(ctx, notification); err != nil {
			j.logger.WarnContext(ctx, "Failed to publish open job reminder", "error", err, "job", key)
			continue
		}
		j.notified[key] = true
	}

	// Claimed steps drop out of the listing; forget them.
	for key := range j.seen {
		if !current[key] {
			delete(j.seen, key)
			delete(j.notified, key)
		}
	}

	return nil
}
