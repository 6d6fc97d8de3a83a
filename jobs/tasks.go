package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/schoolhub/internal/events"
)

// QueueDefault is the default queue name for background jobs.
const QueueDefault = "default"

// NewEntityEventHandler returns the handler that records published entity
// events into the audit_events table. A payload that fails to decode is
// dropped rather than retried.
func NewEntityEventHandler(pool *pgxpool.Pool, logger *slog.Logger, metrics *Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("entity_event")
		var evt events.Event
		if err := json.Unmarshal(t.Payload(), &evt); err != nil {
			if logger != nil {
				logger.Warn("entity event payload undecodable", slog.Any("error", err))
			}
			return tracker.End(asynq.SkipRetry)
		}
		query := `INSERT INTO audit_events (id, entity, action, entity_id, school_id, actor, occurred_at, recorded_at)
		          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
		_, err := pool.Exec(ctx, query, uuid.NewString(), evt.Entity, evt.Action, evt.EntityID, evt.SchoolID, evt.Actor, evt.OccurredAt, time.Now())
		return tracker.End(err)
	}
}
