package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "picklog/contexts/robot-operations/pick-event-log/application"
	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	domainerrors "picklog/contexts/robot-operations/pick-event-log/domain/errors"
	"picklog/contexts/robot-operations/pick-event-log/ports"
)

const (
	PickLoggedEventType = "pick.logged"
	PickLoggedTopic     = "robot-operations.pick-logged"
)

type LogPickCommand struct {
	RobotID       string
	ItemID        string
	CorrelationID string
}

type LogPickResult struct {
	Event     entities.PickEvent
	Published bool
}

type LogPickUseCase struct {
	Log           ports.EventLog
	Publisher     ports.EventPublisher
	IDGenerator   ports.IDGenerator
	Topic         string
	SourceService string
	Logger        *slog.Logger
}

// Execute appends the pick and then announces it on the bus. The append is the
// source of truth: a failed publish is logged and the stored event is still
// returned.
func (u LogPickUseCase) Execute(ctx context.Context, cmd LogPickCommand) (LogPickResult, error) {
	logger := application.ResolveLogger(u.Logger)
	robotID := strings.TrimSpace(cmd.RobotID)
	itemID := strings.TrimSpace(cmd.ItemID)
	if robotID == "" || itemID == "" {
		logger.Warn("log pick rejected",
			"event", "log_pick_rejected",
			"module", "robot-operations/pick-event-log",
			"layer", "application",
			"correlation_id", cmd.CorrelationID,
		)
		return LogPickResult{}, domainerrors.ErrInvalidPickRequest
	}

	event, err := u.Log.Append(ctx, robotID, itemID)
	if err != nil {
		logger.Error("log pick append failed",
			"event", "log_pick_append_failed",
			"module", "robot-operations/pick-event-log",
			"layer", "application",
			"robot_id", robotID,
			"item_id", itemID,
			"error", err.Error(),
		)
		return LogPickResult{}, err
	}

	logger.Info("pick event logged",
		"event", "pick_event_logged",
		"module", "robot-operations/pick-event-log",
		"layer", "application",
		"robot_id", event.RobotID,
		"item_id", event.ItemID,
		"timestamp", event.FormattedTimestamp(),
		"correlation_id", cmd.CorrelationID,
	)

	result := LogPickResult{Event: event}
	if u.Publisher == nil {
		return result, nil
	}

	envelope, err := u.buildEnvelope(ctx, event, cmd.CorrelationID)
	if err == nil {
		err = u.Publisher.Publish(ctx, u.topic(), envelope)
	}
	if err != nil {
		logger.Error("pick event publish failed",
			"event", "pick_event_publish_failed",
			"module", "robot-operations/pick-event-log",
			"layer", "application",
			"robot_id", event.RobotID,
			"topic", u.topic(),
			"error", err.Error(),
		)
		return result, nil
	}
	result.Published = true
	return result, nil
}

func (u LogPickUseCase) buildEnvelope(ctx context.Context, event entities.PickEvent, correlationID string) (ports.EventEnvelope, error) {
	eventID := ""
	if u.IDGenerator != nil {
		id, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return ports.EventEnvelope{}, err
		}
		eventID = id
	}
	return ports.EventEnvelope{
		EventID:        eventID,
		EventType:      PickLoggedEventType,
		SourceService:  u.SourceService,
		OccurredAtUTC:  event.Timestamp.UTC().Truncate(time.Millisecond),
		CorrelationID:  correlationID,
		EntityType:     "pick_event",
		EntityID:       event.RobotID,
		PayloadVersion: 1,
		Payload: map[string]string{
			"robot_id":  event.RobotID,
			"item_id":   event.ItemID,
			"timestamp": event.FormattedTimestamp(),
		},
	}, nil
}

func (u LogPickUseCase) topic() string {
	if strings.TrimSpace(u.Topic) == "" {
		return PickLoggedTopic
	}
	return u.Topic
}
