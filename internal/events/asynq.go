package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskEntityEvent is the task type the background worker consumes.
const TaskEntityEvent = "event:record"

// Asynq enqueues events as background tasks for the worker to record.
type Asynq struct {
	client *asynq.Client
}

// NewAsynq constructs an Asynq publisher.
func NewAsynq(client *asynq.Client) *Asynq {
	return &Asynq{client: client}
}

// Publish enqueues the event on the default queue.
func (a *Asynq) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: marshal: %w", err)
	}
	task := asynq.NewTask(TaskEntityEvent, payload)
	if _, err := a.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("events: enqueue: %w", err)
	}
	return nil
}
