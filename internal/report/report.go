package report

import (
	"sort"
	"strings"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/calendar"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// WeekendSummary aggregates event outcomes for one weekend.
type WeekendSummary struct {
	WeekendKey string `json:"weekend_key"`
	Planned    int    `json:"planned"`
	Completed  int    `json:"completed"`
	Cancelled  int    `json:"cancelled"`
}

// WeeklyReport summarizes events per weekend key, oldest first. Soft-deleted
// events and ideas are excluded; ideas are not commitments.
func WeeklyReport(events []model.WeekendEvent) []WeekendSummary {
	byKey := make(map[string]*WeekendSummary)
	for _, ev := range events {
		if ev.IsDeleted() || ev.Type != model.EventTypePlan {
			continue
		}
		s, ok := byKey[ev.WeekendKey]
		if !ok {
			s = &WeekendSummary{WeekendKey: ev.WeekendKey}
			byKey[ev.WeekendKey] = s
		}
		switch ev.Status {
		case model.EventStatusCompleted:
			s.Completed++
		case model.EventStatusCancelled:
			s.Cancelled++
		default:
			s.Planned++
		}
	}

	out := make([]WeekendSummary, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekendKey < out[j].WeekendKey })
	return out
}

// CurrentStreak counts consecutive weekends with at least one completed
// event, walking back from the current planner week. The current weekend
// extends the streak when it already has a completion but does not break it
// while still in progress; the streak breaks at the first earlier weekend
// without one.
func CurrentStreak(events []model.WeekendEvent, now time.Time, cfg model.WeekendConfiguration, loc *time.Location) int {
	completed := make(map[string]bool)
	for _, ev := range events {
		if ev.IsDeleted() || ev.Status != model.EventStatusCompleted {
			continue
		}
		completed[ev.WeekendKey] = true
	}
	if len(completed) == 0 {
		return 0
	}

	key := calendar.PlannerWeekKey(now, cfg, loc)
	streak := 0
	if completed[key] {
		streak++
	}
	for {
		prev, err := previousWeekendKey(key, loc)
		if err != nil {
			return streak
		}
		if !completed[prev] {
			return streak
		}
		streak++
		key = prev
	}
}

func previousWeekendKey(key string, loc *time.Location) (string, error) {
	t, err := calendar.ParseKey(key, loc)
	if err != nil {
		return "", err
	}
	return calendar.FormatKey(t.AddDate(0, 0, -7)), nil
}

// GoalProgress compares a month's event counts against its goal targets.
type GoalProgress struct {
	Month           string `json:"month"`
	PlannedCount    int    `json:"planned_count"`
	CompletedCount  int    `json:"completed_count"`
	PlannedTarget   int    `json:"planned_target"`
	CompletedTarget int    `json:"completed_target"`
}

func (p GoalProgress) PlannedMet() bool {
	return p.PlannedTarget > 0 && p.PlannedCount >= p.PlannedTarget
}

func (p GoalProgress) CompletedMet() bool {
	return p.CompletedTarget > 0 && p.CompletedCount >= p.CompletedTarget
}

// ProgressFor counts the goal month's plan events. An event belongs to the
// month its weekend key starts in.
func ProgressFor(goal model.MonthlyGoal, events []model.WeekendEvent) GoalProgress {
	progress := GoalProgress{
		Month:           goal.Month,
		PlannedTarget:   goal.PlannedTarget,
		CompletedTarget: goal.CompletedTarget,
	}
	for _, ev := range events {
		if ev.IsDeleted() || ev.Type != model.EventTypePlan {
			continue
		}
		if !strings.HasPrefix(ev.WeekendKey, goal.Month+"-") {
			continue
		}
		progress.PlannedCount++
		if ev.Status == model.EventStatusCompleted {
			progress.CompletedCount++
		}
	}
	return progress
}
