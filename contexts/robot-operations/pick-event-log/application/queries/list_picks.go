package queries

import (
	"context"
	"log/slog"
	"strings"

	application "picklog/contexts/robot-operations/pick-event-log/application"
	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	"picklog/contexts/robot-operations/pick-event-log/ports"
)

type ListPicksQuery struct {
	RobotFilter string
}

type ListPicksResult struct {
	Items    []entities.PickEvent
	Total    int
	Capacity int
}

type ListPicksUseCase struct {
	Log    ports.EventLog
	Logger *slog.Logger
}

// Execute returns the current log contents, oldest first. Total counts every
// stored event, before the robot filter is applied.
func (u ListPicksUseCase) Execute(ctx context.Context, query ListPicksQuery) (ListPicksResult, error) {
	logger := application.ResolveLogger(u.Logger)
	snapshot, err := u.Log.Snapshot(ctx)
	if err != nil {
		logger.Error("list picks failed",
			"event", "list_picks_failed",
			"module", "robot-operations/pick-event-log",
			"layer", "application",
			"error", err.Error(),
		)
		return ListPicksResult{}, err
	}

	filter := strings.TrimSpace(query.RobotFilter)
	items := snapshot
	if filter != "" {
		items = make([]entities.PickEvent, 0, len(snapshot))
		for _, event := range snapshot {
			if event.MatchesRobot(filter) {
				items = append(items, event)
			}
		}
	}

	logger.Debug("list picks completed",
		"event", "list_picks_completed",
		"module", "robot-operations/pick-event-log",
		"layer", "application",
		"robot_filter", filter,
		"items_count", len(items),
		"total_count", len(snapshot),
	)

	return ListPicksResult{
		Items:    items,
		Total:    len(snapshot),
		Capacity: u.Log.Capacity(),
	}, nil
}
