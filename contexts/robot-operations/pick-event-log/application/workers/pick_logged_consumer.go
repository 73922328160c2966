package workers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "picklog/contexts/robot-operations/pick-event-log/application"
	"picklog/contexts/robot-operations/pick-event-log/application/commands"
	"picklog/contexts/robot-operations/pick-event-log/ports"
)

// PickLoggedConsumer turns pick.logged envelopes into pick metrics and an
// activity log line.
type PickLoggedConsumer struct {
	Subscriber    ports.EventSubscriber
	Metrics       ports.PickMetrics
	Topic         string
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c PickLoggedConsumer) Start(ctx context.Context) error {
	if c.Subscriber == nil {
		return fmt.Errorf("pick logged consumer: subscriber is required")
	}
	topic := c.Topic
	if strings.TrimSpace(topic) == "" {
		topic = commands.PickLoggedTopic
	}
	group := c.ConsumerGroup
	if strings.TrimSpace(group) == "" {
		group = "pick-event-log-metrics-cg"
	}
	return c.Subscriber.Subscribe(ctx, topic, group, c.Handle)
}

func (c PickLoggedConsumer) Handle(ctx context.Context, envelope ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	if envelope.EventType != commands.PickLoggedEventType {
		logger.Debug("ignoring unexpected event type",
			"event", "pick_logged_consumer_skipped",
			"module", "robot-operations/pick-event-log",
			"layer", "worker",
			"event_id", envelope.EventID,
			"event_type", envelope.EventType,
		)
		return nil
	}
	robotID := strings.TrimSpace(envelope.EntityID)
	if robotID == "" {
		return fmt.Errorf("pick logged event %s has no robot id", envelope.EventID)
	}

	if c.Metrics != nil {
		c.Metrics.RecordPick(ctx, robotID)
	}
	logger.Info("pick activity observed",
		"event", "pick_activity_observed",
		"module", "robot-operations/pick-event-log",
		"layer", "worker",
		"event_id", envelope.EventID,
		"correlation_id", envelope.CorrelationID,
		"robot_id", robotID,
		"occurred_at", envelope.OccurredAtUTC,
	)
	return nil
}
