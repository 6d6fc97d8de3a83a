package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel entity events are published to.
const Channel = "schoolhub.events"

// Redis publishes events to a Redis channel.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs a Redis publisher.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Publish sends the event as JSON on the events channel.
func (r *Redis) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	if err := r.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("events: publish: %w", err)
	}
	return nil
}
