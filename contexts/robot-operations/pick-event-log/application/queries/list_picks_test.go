package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"picklog/contexts/robot-operations/pick-event-log/adapters/memory"
)

func seededStore(t *testing.T, pairs ...[2]string) *memory.Store {
	t.Helper()
	store := memory.NewStore(10, nil, nil)
	for _, pair := range pairs {
		_, err := store.Append(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
	}
	return store
}

func TestListPicksReturnsInsertionOrder(t *testing.T) {
	store := seededStore(t, [2]string{"R1", "A"}, [2]string{"R1", "B"}, [2]string{"R2", "C"})
	result, err := ListPicksUseCase{Log: store}.Execute(context.Background(), ListPicksQuery{})
	require.NoError(t, err)

	require.Equal(t, 3, result.Total)
	require.Equal(t, 10, result.Capacity)
	require.Len(t, result.Items, 3)
	want := [][2]string{{"R1", "A"}, {"R1", "B"}, {"R2", "C"}}
	for i, event := range result.Items {
		require.Equal(t, want[i][0], event.RobotID)
		require.Equal(t, want[i][1], event.ItemID)
		if i > 0 {
			require.False(t, event.Timestamp.Before(result.Items[i-1].Timestamp))
		}
	}
}

func TestListPicksFiltersByRobotCaseInsensitively(t *testing.T) {
	store := seededStore(t,
		[2]string{"Robot-A", "1"},
		[2]string{"robot-b", "2"},
		[2]string{"ROBOT-A2", "3"},
	)
	result, err := ListPicksUseCase{Log: store}.Execute(context.Background(), ListPicksQuery{RobotFilter: "robot-a"})
	require.NoError(t, err)

	require.Equal(t, 3, result.Total)
	require.Len(t, result.Items, 2)
	require.Equal(t, "1", result.Items[0].ItemID)
	require.Equal(t, "3", result.Items[1].ItemID)
}

func TestListPicksEmptyLog(t *testing.T) {
	result, err := ListPicksUseCase{Log: memory.NewStore(10, nil, nil)}.Execute(context.Background(), ListPicksQuery{RobotFilter: "x"})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Zero(t, result.Total)
}
