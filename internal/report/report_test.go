package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func planEvent(id, key string, status model.EventStatus) model.WeekendEvent {
	ev := model.WeekendEvent{
		ID:              id,
		Title:           "Activity " + id,
		Type:            model.EventTypePlan,
		WeekendKey:      key,
		Days:            []model.Weekday{model.WeekdaySaturday},
		OwnerID:         "user-1",
		Status:          status,
		ClientUpdatedAt: time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC),
	}
	at := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	switch status {
	case model.EventStatusCompleted:
		ev.CompletedAt = &at
	case model.EventStatusCancelled:
		ev.CancelledAt = &at
	}
	return ev
}

func TestWeeklyReportGroupsByWeekendKey(t *testing.T) {
	idea := planEvent("e5", "2026-02-14", model.EventStatusPlanned)
	idea.Type = model.EventTypeIdea
	deleted := planEvent("e6", "2026-02-14", model.EventStatusPlanned)
	at := time.Date(2026, time.February, 12, 9, 0, 0, 0, time.UTC)
	deleted.SoftDelete(at)

	events := []model.WeekendEvent{
		planEvent("e1", "2026-02-14", model.EventStatusCompleted),
		planEvent("e2", "2026-02-14", model.EventStatusPlanned),
		planEvent("e3", "2026-02-14", model.EventStatusCancelled),
		planEvent("e4", "2026-02-07", model.EventStatusCompleted),
		idea,
		deleted,
	}

	got := WeeklyReport(events)

	require.Equal(t, []WeekendSummary{
		{WeekendKey: "2026-02-07", Completed: 1},
		{WeekendKey: "2026-02-14", Planned: 1, Completed: 1, Cancelled: 1},
	}, got)
}

func TestCurrentStreakWalksBackFromPlannerWeek(t *testing.T) {
	cfg := model.DefaultWeekendConfiguration()
	// Tuesday 2026-02-17: the planner week targets 2026-02-21.
	now := time.Date(2026, time.February, 17, 12, 0, 0, 0, time.UTC)

	events := []model.WeekendEvent{
		planEvent("e1", "2026-02-14", model.EventStatusCompleted),
		planEvent("e2", "2026-02-07", model.EventStatusCompleted),
		// Gap on 2026-01-31 breaks the streak.
		planEvent("e3", "2026-01-24", model.EventStatusCompleted),
	}

	require.Equal(t, 2, CurrentStreak(events, now, cfg, time.UTC))
}

func TestCurrentStreakCountsInProgressWeekend(t *testing.T) {
	cfg := model.DefaultWeekendConfiguration()
	now := time.Date(2026, time.February, 17, 12, 0, 0, 0, time.UTC)

	events := []model.WeekendEvent{
		planEvent("e1", "2026-02-21", model.EventStatusCompleted),
		planEvent("e2", "2026-02-14", model.EventStatusCompleted),
	}

	require.Equal(t, 2, CurrentStreak(events, now, cfg, time.UTC))
	require.Equal(t, 0, CurrentStreak(nil, now, cfg, time.UTC))
}

func TestGoalProgressCountsMonthEvents(t *testing.T) {
	goal := model.MonthlyGoal{UserID: "user-1", Month: "2026-02", PlannedTarget: 3, CompletedTarget: 2}

	events := []model.WeekendEvent{
		planEvent("e1", "2026-02-07", model.EventStatusCompleted),
		planEvent("e2", "2026-02-14", model.EventStatusCompleted),
		planEvent("e3", "2026-02-21", model.EventStatusPlanned),
		planEvent("e4", "2026-03-07", model.EventStatusCompleted),
	}

	got := ProgressFor(goal, events)

	require.Equal(t, 3, got.PlannedCount)
	require.Equal(t, 2, got.CompletedCount)
	require.True(t, got.PlannedMet())
	require.True(t, got.CompletedMet())

	zero := ProgressFor(model.MonthlyGoal{UserID: "user-1", Month: "2026-04"}, events)
	require.False(t, zero.PlannedMet())
}
