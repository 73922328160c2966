package ports

import (
	"context"
	"time"

	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	"picklog/internal/shared/events"
)

// Clock allows deterministic testing of event timestamps.
type Clock interface {
	Now() time.Time
}

// EventLog is the bounded pick log. Append evicts the oldest entries once the
// capacity is exceeded; Snapshot returns a copy in insertion order.
type EventLog interface {
	Append(ctx context.Context, robotID string, itemID string) (entities.PickEvent, error)
	Snapshot(ctx context.Context) ([]entities.PickEvent, error)
	Capacity() int
}

// EventEnvelope reuses the shared envelope contract.
type EventEnvelope = events.Envelope

// EventPublisher publishes envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

// IDGenerator abstracts envelope identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PickMetrics receives one observation per logged pick.
type PickMetrics interface {
	RecordPick(ctx context.Context, robotID string)
}
