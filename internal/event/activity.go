package event

import (
	"context"
	"log/slog"
)

// LogActivity subscribes to the bus and writes one structured log line per
// mutation until ctx is cancelled. Run it in its own goroutine.
func LogActivity(ctx context.Context, bus Bus) {
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			slog.Info("activity",
				"event_id", e.ID,
				"type", string(e.Type),
				"resource_id", e.ResourceID,
				"actor_id", e.ActorID,
				"occurred_at", e.OccurredAt,
			)
		}
	}
}
