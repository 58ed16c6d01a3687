package syncer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MazharElstub/The-Weekend-sub002/internal/cache"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func newTestQueue(t *testing.T) (*cache.Store, *Queue) {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	coord := cache.NewCoordinator(store, time.Minute)
	t.Cleanup(func() { _ = coord.Close() })
	return store, NewQueue(store, coord)
}

func TestEnqueuePersistsImmediately(t *testing.T) {
	store, q := newTestQueue(t)

	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Hike"))))

	// Durable before any debounce window, without Flush.
	require.True(t, store.Exists(QueueDocument))
}

func TestEnqueueReplacesOperationForSameEntity(t *testing.T) {
	_, q := newTestQueue(t)

	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Old"))))
	require.NoError(t, q.Enqueue(deleteOp("e1")))

	require.Equal(t, 1, q.Len())
	op, ok := q.OperationFor("e1")
	require.True(t, ok)
	require.Equal(t, model.SyncOpDeleteEvent, op.Type)
}

func TestEnqueueRejectsInvalidOperation(t *testing.T) {
	_, q := newTestQueue(t)

	err := q.Enqueue(model.PendingSyncOperation{Type: model.SyncOpUpsertEvent, EntityID: "e1"})
	require.Error(t, err)
	require.Equal(t, 0, q.Len())
}

func TestQueueSurvivesReload(t *testing.T) {
	store, q := newTestQueue(t)
	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Hike"))))
	require.NoError(t, q.Enqueue(deleteOp("e2")))

	coord := cache.NewCoordinator(store, time.Minute)
	t.Cleanup(func() { _ = coord.Close() })
	restored := NewQueue(store, coord)

	require.Equal(t, 2, restored.Len())
	op, ok := restored.OperationFor("e1")
	require.True(t, ok)
	require.NotNil(t, op.Event)
	require.Equal(t, "Hike", op.Event.Title)
}

func TestStateForTracksQueueLifecycle(t *testing.T) {
	_, q := newTestQueue(t)
	now := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)

	require.Equal(t, model.SyncStateSynced, q.StateFor("e1", now))

	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Hike"))))
	require.Equal(t, model.SyncStatePending, q.StateFor("e1", now))

	require.NoError(t, q.MarkFailed("e1", now.Add(10*time.Second)))
	require.Equal(t, model.SyncStateRetrying, q.StateFor("e1", now))

	// Once the scheduled time passes the operation is pending again.
	require.Equal(t, model.SyncStatePending, q.StateFor("e1", now.Add(11*time.Second)))

	require.NoError(t, q.Remove("e1"))
	require.Equal(t, model.SyncStateSynced, q.StateFor("e1", now))
}

func TestForceRetryAllClearsBackoff(t *testing.T) {
	_, q := newTestQueue(t)
	now := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Hike"))))
	require.NoError(t, q.MarkFailed("e1", now.Add(time.Hour)))
	require.Empty(t, q.DueOperations(now))

	require.NoError(t, q.ForceRetryAll(now))

	due := q.DueOperations(now)
	require.Len(t, due, 1)
	require.Equal(t, 0, due[0].Attempts)
}

func TestNextAttemptTimePicksEarliestEligible(t *testing.T) {
	_, q := newTestQueue(t)
	now := time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)

	_, ok := q.NextAttemptTime(now)
	require.False(t, ok)

	require.NoError(t, q.Enqueue(upsertOp(mergeEvent("e1", "calendar-a", "Hike"))))
	require.NoError(t, q.MarkFailed("e1", now.Add(time.Hour)))
	require.NoError(t, q.Enqueue(deleteOp("e2")))

	next, ok := q.NextAttemptTime(now)
	require.True(t, ok)
	// e2 has no scheduled time, so the queue is eligible right now.
	require.Equal(t, now, next)
}
