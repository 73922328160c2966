package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"picklog/contexts/robot-operations/pick-event-log/domain/entities"
	domainerrors "picklog/contexts/robot-operations/pick-event-log/domain/errors"
)

type steppingClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

func newSteppingClock() *steppingClock {
	return &steppingClock{
		next: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		step: time.Second,
	}
}

func TestStoreHoldsLastEventsInOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5, 9, 10, 11, 12, 25} {
		t.Run(fmt.Sprintf("appends_%d", n), func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(10, newSteppingClock(), nil)
			for i := 1; i <= n; i++ {
				_, err := store.Append(ctx, fmt.Sprintf("R%d", i), fmt.Sprintf("item-%d", i))
				require.NoError(t, err)
			}

			snapshot, err := store.Snapshot(ctx)
			require.NoError(t, err)

			want := min(n, 10)
			require.Len(t, snapshot, want)
			require.Equal(t, want, store.Len())
			first := n - want + 1
			for i, event := range snapshot {
				require.Equal(t, fmt.Sprintf("R%d", first+i), event.RobotID)
				require.Equal(t, fmt.Sprintf("item-%d", first+i), event.ItemID)
			}
		})
	}
}

func TestStoreEleventhAppendEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10, newSteppingClock(), nil)
	for i := 0; i < 10; i++ {
		_, err := store.Append(ctx, "R1", fmt.Sprintf("item-%d", i))
		require.NoError(t, err)
	}
	before, err := store.Snapshot(ctx)
	require.NoError(t, err)

	_, err = store.Append(ctx, "R2", "item-10")
	require.NoError(t, err)

	after, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, after, 10)
	require.Equal(t, before[1:], after[:9])
	require.Equal(t, "item-10", after[9].ItemID)
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10, newSteppingClock(), nil)
	_, err := store.Append(ctx, "R1", "A")
	require.NoError(t, err)

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	snapshot[0].RobotID = "tampered"
	snapshot = append(snapshot, entities.PickEvent{RobotID: "extra", ItemID: "extra"})
	require.Len(t, snapshot, 2)

	again, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, "R1", again[0].RobotID)
}

func TestStoreAppendStampsClockTime(t *testing.T) {
	ctx := context.Background()
	clock := newSteppingClock()
	start := clock.next
	store := NewStore(10, clock, nil)

	event, err := store.Append(ctx, "R1", "A")
	require.NoError(t, err)
	require.Equal(t, start, event.Timestamp)
	require.Equal(t, "2025-03-14T09:26:53.000Z", event.FormattedTimestamp())
}

func TestStoreRejectsBlankIdentifiers(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10, nil, nil)

	_, err := store.Append(ctx, " ", "A")
	require.ErrorIs(t, err, domainerrors.ErrInvalidPickEvent)
	_, err = store.Append(ctx, "R1", "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidPickEvent)
	require.Zero(t, store.Len())
}

func TestStoreCapacityFallsBackToDefault(t *testing.T) {
	require.Equal(t, DefaultCapacity, NewStore(0, nil, nil).Capacity())
	require.Equal(t, DefaultCapacity, NewStore(-3, nil, nil).Capacity())
	require.Equal(t, 3, NewStore(3, nil, nil).Capacity())
}

func TestStoreConcurrentAppendsStayBounded(t *testing.T) {
	ctx := context.Background()
	store := NewStore(10, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.Append(ctx, fmt.Sprintf("R%d", i), "item")
			_, _ = store.Snapshot(ctx)
		}(i)
	}
	wg.Wait()

	snapshot, err := store.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 10)
}
