package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OutwardOverdueJob chases vendor batches: it scans for outward steps
// whose batch was dispatched longer than the configured duration ago
// with no return recorded, and notifies once per step.
type OutwardOverdueJob struct {
	handler      queries.GetOverdueOutwardStepsQueryHandler
	notifier     ports.Notifier
	overdueAfter time.Duration
	cron         *cron.Cron
	logger       *slog.Logger

	mu       sync.Mutex
	notified map[string]bool
}

// NewOutwardOverdueJob creates an overdue batch job scanning every minute.
// overdueAfter is how long a batch may sit at a vendor before a reminder.
func NewOutwardOverdueJob(
	handler queries.GetOverdueOutwardStepsQueryHandler,
	notifier ports.Notifier,
	overdueAfter time.Duration,
	logger *slog.Logger,
) *OutwardOverdueJob {
	return &OutwardOverdueJob{
		handler:      handler,
		notifier:     notifier,
		overdueAfter: overdueAfter,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "outward_overdue_job"),
		notified:     make(map[string]bool),
	}
}

// Start begins the overdue batch job, running at the top of every minute.
func (j *OutwardOverdueJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outward overdue job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outward overdue job started (running every minute)")
	return nil
}

// Stop stops the overdue batch job.
func (j *OutwardOverdueJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outward overdue job stopped")
}

func (j *OutwardOverdueJob) run(ctx context.Context) error {
	query, err := queries.NewGetOverdueOutwardStepsQuery(time.Now().Add(-j.overdueAfter))
	if err != nil {
		return err
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := make(map[string]bool, len(overdue))
	for _, step := range overdue {
		key := fmt.Sprintf("%s/%d", step.JobCardID, step.StepIndex)
		current[key] = true

		if j.notified[key] {
			continue
		}

		notification := ports.Notification{
			Kind:    "outward_overdue",
			Subject: step.JobCardID.String(),
			Message: fmt.Sprintf("batch for %q sent to %s on %s has not returned",
				step.StepName, step.VendorName, step.SentDate.Format("2006-01-02")),
		}
		if err := j.notifier.Publish(ctx, notification); err != nil {
			j.logger.WarnContext(ctx, "Failed to publish outward overdue reminder", "error", err, "step", key)
			continue
		}
		j.notified[key] = true
	}

	// Returned batches drop out of the scan; forget them.
	for key := range j.notified {
		if !current[key] {
			delete(j.notified, key)
		}
	}

	return nil
}
