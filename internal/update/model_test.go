package update

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
	"github.com/MazharElstub/The-Weekend-sub002/internal/cache"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
	"github.com/MazharElstub/The-Weekend-sub002/internal/remote"
	"github.com/MazharElstub/The-Weekend-sub002/internal/share"
	"github.com/MazharElstub/The-Weekend-sub002/internal/syncer"
)

type stubRemote struct{}

func (stubRemote) ListEvents(context.Context) ([]model.WeekendEvent, error)       { return nil, nil }
func (stubRemote) UpsertEvent(context.Context, model.WeekendEvent) error          { return nil }
func (stubRemote) DeleteEvent(context.Context, string) error                      { return nil }
func (stubRemote) ListCalendars(context.Context) ([]model.PlannerCalendar, error) { return nil, nil }
func (stubRemote) ListNotices(context.Context) ([]model.UserNotice, error)        { return nil, nil }
func (stubRemote) MarkNoticeRead(context.Context, string) (bool, error)           { return true, nil }
func (stubRemote) ListGoals(context.Context) ([]model.MonthlyGoal, error)         { return nil, nil }
func (stubRemote) UpsertGoal(context.Context, model.MonthlyGoal) error            { return nil }
func (stubRemote) DeleteMyAccount(context.Context, remote.OwnershipMode) (remote.DeleteAccountResult, error) {
	return remote.DeleteAccountResult{}, nil
}
func (stubRemote) RequestPasswordReset(context.Context, string) error { return nil }

// testNow is a Tuesday; its planner week targets the 2026-02-21 weekend.
var testNow = time.Date(2026, time.February, 17, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store, err := cache.NewStore(t.TempDir())
	require.NoError(t, err)
	coord := cache.NewCoordinator(store, 10*time.Millisecond)
	t.Cleanup(func() { _ = coord.Close() })

	queue := syncer.NewQueue(store, coord)
	engine := syncer.NewEngine(queue, stubRemote{})

	inbox, err := share.OpenInbox(filepath.Join(t.TempDir(), "inbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = inbox.Close() })

	a := app.New(app.Options{
		Location: time.UTC,
		Store:    store,
		Coord:    coord,
		Queue:    queue,
		Engine:   engine,
		Remote:   stubRemote{},
		Inbox:    inbox,
	})
	a.SignIn("user-1")

	m := NewModel(a, time.UTC)
	m.Now = func() time.Time { return testNow }
	m.refreshPlanner()
	m.refreshCountdown()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlannerListsConsecutiveUpcomingWeekends(t *testing.T) {
	m := newTestModel(t)

	require.Len(t, m.Planner.Rows, plannerHorizon)
	require.Equal(t, "2026-02-21", m.Planner.Rows[0].WeekendKey)
	require.Equal(t, "2026-02-28", m.Planner.Rows[1].WeekendKey)
	require.Equal(t, app.ReadinessUnplanned, m.Planner.Rows[0].Readiness)
}

func TestViewKeysSwitchScreens(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(keyMsg("2"))
	m = next.(Model)
	require.Equal(t, ViewCountdown, m.CurrentView)

	next, _ = m.Update(keyMsg("3"))
	m = next.(Model)
	require.Equal(t, ViewNotices, m.CurrentView)

	next, _ = m.Update(keyMsg("1"))
	m = next.(Model)
	require.Equal(t, ViewPlanner, m.CurrentView)
}

func TestQuickAddCreatesPlanForSelectedWeekend(t *testing.T) {
	m := newTestModel(t)

	m = m.handlePlannerKey(keyMsg("a"))
	require.True(t, m.Planner.QuickAdd)

	m.quickAddInput.SetValue("picnic at the lake")
	m = m.handleQuickAddKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.False(t, m.Planner.QuickAdd)
	require.False(t, m.Status.IsError, m.Status.Text)

	events := m.App.EventsForSelectedCalendar()
	require.Len(t, events, 1)
	require.Equal(t, "picnic at the lake", events[0].Title)
	require.Equal(t, "2026-02-21", events[0].WeekendKey)
	require.Equal(t, model.EventTypePlan, events[0].Type)
}

func TestPaletteProtectCommand(t *testing.T) {
	m := newTestModel(t)

	m.Palette.Active = true
	m.Palette.Input = "protect 2026-02-21"
	m = m.executePaletteCommand()

	require.False(t, m.Palette.Active)
	require.False(t, m.Status.IsError, m.Status.Text)
	require.Equal(t, app.ReadinessProtected, m.App.Readiness("2026-02-21"))
	require.Equal(t, app.ReadinessProtected, m.Planner.Rows[0].Readiness)
}

func TestPaletteUnknownCommandReportsError(t *testing.T) {
	m := newTestModel(t)

	m.Palette.Active = true
	m.Palette.Input = "frobnicate now"
	m = m.executePaletteCommand()

	require.True(t, m.Status.IsError)
	require.False(t, m.Palette.Active)
}

func TestProtectionToggleFromPlanner(t *testing.T) {
	m := newTestModel(t)

	m = m.handlePlannerKey(keyMsg("P"))
	require.Equal(t, app.ReadinessProtected, m.App.Readiness("2026-02-21"))

	m = m.handlePlannerKey(keyMsg("P"))
	require.Equal(t, app.ReadinessUnplanned, m.App.Readiness("2026-02-21"))
}

func TestStagedPrefillOpensQuickAdd(t *testing.T) {
	m := newTestModel(t)

	_, err := m.App.HandleShare(context.Background(), "Street food market\nFriday picks", "https://example.com/market", testNow)
	require.NoError(t, err)

	m = m.applyChange(app.ChangePrefill)
	require.Equal(t, ViewPlanner, m.CurrentView)
	require.True(t, m.Planner.QuickAdd)
	require.Equal(t, "Street food market", m.quickAddInput.Value())
	require.Equal(t, "2026-02-21", m.Planner.Rows[m.Planner.Cursor].WeekendKey)
}
