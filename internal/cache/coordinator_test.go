package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, debounce time.Duration) (*Store, *Coordinator) {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	c := NewCoordinator(store, debounce)
	t.Cleanup(func() { _ = c.Close() })
	return store, c
}

func listDocs(t *testing.T, store *Store) []string {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSaveImmediateCreatesOnlyNamedFile(t *testing.T) {
	store, c := newTestCoordinator(t, time.Minute)

	require.NoError(t, c.SaveImmediate("events", []string{"event-1"}))

	names := listDocs(t, store)
	require.Equal(t, []string{"events.json"}, names)
}

func TestDebouncedSavesKeepOnlyLatestValue(t *testing.T) {
	store, c := newTestCoordinator(t, 25*time.Millisecond)

	require.NoError(t, c.ScheduleSave("protections", []string{"old"}))
	require.NoError(t, c.ScheduleSave("protections", []string{"new"}))

	// Nothing durable until the window elapses.
	require.False(t, store.Exists("protections"))

	time.Sleep(80 * time.Millisecond)

	var got []string
	require.True(t, store.Load("protections", &got))
	require.Equal(t, []string{"new"}, got)
}

func TestFlushWritesPendingWithoutWaiting(t *testing.T) {
	store, c := newTestCoordinator(t, time.Hour)

	require.NoError(t, c.ScheduleSave("goals", map[string]int{"2026-02": 3}))
	require.False(t, store.Exists("goals"))

	require.NoError(t, c.Flush())

	var got map[string]int
	require.True(t, store.Load("goals", &got))
	require.Equal(t, 3, got["2026-02"])
}

func TestScheduleSupersedesEarlierPendingWrite(t *testing.T) {
	store, c := newTestCoordinator(t, time.Hour)

	require.NoError(t, c.ScheduleSave("events", []int{1}))
	require.NoError(t, c.ScheduleSave("events", []int{1, 2}))
	require.NoError(t, c.Flush())

	var got []int
	require.True(t, store.Load("events", &got))
	require.Equal(t, []int{1, 2}, got)
}

func TestLoadTreatsMalformedDocumentAsAbsent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path("events"), []byte("{not json"), 0o644))

	var got []string
	require.False(t, store.Load("events", &got))
	require.False(t, store.Load("missing", &got))
}

func TestClearRemovesAllDocuments(t *testing.T) {
	store, c := newTestCoordinator(t, time.Minute)

	require.NoError(t, c.SaveImmediate("events", []string{"a"}))
	require.NoError(t, c.SaveImmediate("notices", []string{"b"}))
	require.NoError(t, store.Clear())

	require.Empty(t, listDocs(t, store))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "keep.txt"), []byte("x"), 0o644))
	require.NoError(t, store.Clear())
	require.Equal(t, []string{"keep.txt"}, listDocs(t, store))
}
