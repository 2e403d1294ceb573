package ports

import (
	"context"
)

// Notification is a message for the shop-floor notification channel:
// stage changes, audit entries for manual overrides, and reminders.
type Notification struct {
	// Kind classifies the notification (e.g. "stage_changed",
	// "order_held", "open_job_reminder").
	Kind string
	// Subject identifies the order or job card the message concerns.
	Subject string
	// Message is the human-readable text to display.
	Message string
}

// Notifier publishes notifications to the shop-floor channel. Publishing
// is best-effort: a failed publish never rolls back the operation that
// produced it.
type Notifier interface {
	// Publish sends a notification to the channel.
	Publish(ctx context.Context, notification Notification) error
}
