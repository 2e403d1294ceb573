// Package redisbus publishes shop-floor notifications over Redis pub/sub.
// Terminals on the floor subscribe to a single channel; every stage
// change, manual override, and reminder lands there as a JSON message.
package redisbus

import (
	"context"
	"encoding/json"

	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// notificationEnvelope is the wire format of a published notification.
type notificationEnvelope struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// RedisNotifier implements ports.Notifier on top of a Redis pub/sub
// channel. Publishing is fire-and-forget: subscribers that are offline
// miss the message, which is acceptable for advisory notifications.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier creates a notifier publishing to the given channel.
func NewRedisNotifier(client *redis.Client, channel string) (*RedisNotifier, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	return &RedisNotifier{client: client, channel: channel}, nil
}

// Publish sends the notification to the channel as a JSON envelope.
func (n *RedisNotifier) Publish(ctx context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notificationEnvelope{
		Kind:    notification.Kind,
		Subject: notification.Subject,
		Message: notification.Message,
	})
	if err != nil {
		return err
	}

	return n.client.Publish(ctx, n.channel, payload).Err()
}
