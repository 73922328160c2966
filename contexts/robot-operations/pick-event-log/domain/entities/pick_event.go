package entities

import (
	"strings"
	"time"

	domainerrors "picklog/contexts/robot-operations/pick-event-log/domain/errors"
)

// TimestampLayout renders timestamps the way browsers print Date.toISOString().
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// PickEvent records a robot picking an item. Values are never mutated after
// construction; the log hands out copies.
type PickEvent struct {
	RobotID   string
	ItemID    string
	Timestamp time.Time
}

func NewPickEvent(robotID string, itemID string, at time.Time) (PickEvent, error) {
	if strings.TrimSpace(robotID) == "" || strings.TrimSpace(itemID) == "" {
		return PickEvent{}, domainerrors.ErrInvalidPickEvent
	}
	return PickEvent{
		RobotID:   robotID,
		ItemID:    itemID,
		Timestamp: at.UTC(),
	}, nil
}

func (e PickEvent) FormattedTimestamp() string {
	return e.Timestamp.UTC().Format(TimestampLayout)
}

// MatchesRobot reports whether the robot id contains filter, ignoring case.
// An empty filter matches every event.
func (e PickEvent) MatchesRobot(filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.RobotID), strings.ToLower(filter))
}
