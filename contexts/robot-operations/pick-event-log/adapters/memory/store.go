package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	application "picklog/contexts/robot-operations/pick-event-log/application"
	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	"picklog/contexts/robot-operations/pick-event-log/ports"
)

// DefaultCapacity is the number of pick events kept when no capacity is configured.
const DefaultCapacity = 10

// Store is the process-local pick log. It holds at most capacity events in
// insertion order (oldest first) and is not intended as persistence.
type Store struct {
	mu       sync.RWMutex
	events   []entities.PickEvent
	capacity int
	clock    ports.Clock
	logger   *slog.Logger
}

// NewStore builds an empty log. Non-positive capacities fall back to
// DefaultCapacity; a nil clock uses wall-clock UTC time.
func NewStore(capacity int, clock ports.Clock, logger *slog.Logger) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		events:   make([]entities.PickEvent, 0, capacity+1),
		capacity: capacity,
		clock:    clock,
		logger:   application.ResolveLogger(logger),
	}
}

func (s *Store) Append(_ context.Context, robotID string, itemID string) (entities.PickEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := entities.NewPickEvent(robotID, itemID, s.Now())
	if err != nil {
		return entities.PickEvent{}, err
	}

	s.events = append(s.events, event)
	if overflow := len(s.events) - s.capacity; overflow > 0 {
		oldest := s.events[0]
		n := copy(s.events, s.events[overflow:])
		s.events = s.events[:n]
		s.logger.Debug("pick log evicted oldest events",
			"event", "pick_log_evicted",
			"module", "robot-operations/pick-event-log",
			"layer", "adapter",
			"evicted_count", overflow,
			"oldest_robot_id", oldest.RobotID,
			"oldest_timestamp", oldest.FormattedTimestamp(),
		)
	}
	return event, nil
}

func (s *Store) Snapshot(_ context.Context) ([]entities.PickEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]entities.PickEvent, 0, len(s.events)), s.events...), nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *Store) Capacity() int {
	return s.capacity
}

func (s *Store) Now() time.Time {
	if s.clock != nil {
		return s.clock.Now().UTC()
	}
	return time.Now().UTC()
}

var _ ports.EventLog = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
