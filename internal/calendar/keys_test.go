package calendar

import (
	"testing"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func satSun() model.WeekendConfiguration {
	return model.DefaultWeekendConfiguration()
}

func tueWed() model.WeekendConfiguration {
	cfg := model.DefaultWeekendConfiguration()
	cfg.WeekendDays = []model.Weekday{model.WeekdayTuesday, model.WeekdayWednesday}
	return cfg
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekendKeyOnWeekendDaysOnly(t *testing.T) {
	cfg := satSun()

	key, ok := WeekendKey(date(2026, 2, 14), cfg, time.UTC) // Saturday
	if !ok || key != "2026-02-14" {
		t.Fatalf("Saturday key = %q, ok=%v", key, ok)
	}

	key, ok = WeekendKey(date(2026, 2, 15), cfg, time.UTC) // Sunday
	if !ok || key != "2026-02-14" {
		t.Fatalf("Sunday key = %q, ok=%v", key, ok)
	}

	if _, ok := WeekendKey(date(2026, 2, 11), cfg, time.UTC); ok { // Wednesday
		t.Fatal("Wednesday should have no weekend key")
	}
}

func TestWeekendKeyNonAdjacentConfiguration(t *testing.T) {
	cfg := tueWed()

	key, ok := WeekendKey(date(2026, 2, 10), cfg, time.UTC) // Tuesday
	if !ok || key != "2026-02-10" {
		t.Fatalf("Tuesday key = %q, ok=%v", key, ok)
	}
	key, ok = WeekendKey(date(2026, 2, 11), cfg, time.UTC) // Wednesday
	if !ok || key != "2026-02-10" {
		t.Fatalf("Wednesday key = %q, ok=%v", key, ok)
	}
}

func TestPlannerWeekKeyAnchorsToUpcomingWeekend(t *testing.T) {
	cfg := satSun()

	if key := PlannerWeekKey(date(2026, 2, 11), cfg, time.UTC); key != "2026-02-14" {
		t.Fatalf("Wednesday planner week = %q", key)
	}
	if key := PlannerWeekKey(date(2026, 2, 16), cfg, time.UTC); key != "2026-02-21" {
		t.Fatalf("Monday planner week = %q", key)
	}
	if key := PlannerWeekKey(date(2026, 2, 15), cfg, time.UTC); key != "2026-02-14" {
		t.Fatalf("Sunday planner week = %q", key)
	}
}

func TestPlannerWeekKeyIdempotentOnKeys(t *testing.T) {
	cfg := satSun()
	for _, key := range []string{"2026-02-14", "2026-02-21", "2026-12-26"} {
		d, err := ParseKey(key, time.UTC)
		if err != nil {
			t.Fatalf("parse %s: %v", key, err)
		}
		if got := PlannerWeekKey(d, cfg, time.UTC); got != key {
			t.Fatalf("PlannerWeekKey(%s) = %s", key, got)
		}
	}
}

func TestNextWeekendKey(t *testing.T) {
	key, err := NextWeekendKey("2026-02-14", time.UTC)
	if err != nil || key != "2026-02-21" {
		t.Fatalf("next key = %q, err=%v", key, err)
	}
	if _, err := NextWeekendKey("not-a-key", time.UTC); err == nil {
		t.Fatal("expected error for malformed key")
	}
}

func TestMonthSelectionKey(t *testing.T) {
	cfg := satSun()
	ref := time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		key  string
		want string
	}{
		{"2026-02-21", MonthSelectionUpcoming},
		{"2026-03-07", MonthSelectionUpcoming},
		{"2026-02-14", "2026-02-01"},
		{"2025-06-07", "2025-06-01"},
		{"2024-12-07", MonthSelectionPrevious},
	}
	for _, tc := range cases {
		got, err := MonthSelectionKey(tc.key, ref, cfg, time.UTC)
		if err != nil {
			t.Fatalf("MonthSelectionKey(%s): %v", tc.key, err)
		}
		if got != tc.want {
			t.Fatalf("MonthSelectionKey(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestIntervalsOffsetsFridayAndMonday(t *testing.T) {
	event := model.WeekendEvent{
		ID:         "event-1",
		Title:      "Away trip",
		Type:       model.EventTypePlan,
		WeekendKey: "2026-02-14",
		Days:       []model.Weekday{model.WeekdayFriday, model.WeekdayMonday},
		Status:     model.EventStatusPlanned,
	}
	intervals, err := Intervals(event, time.UTC)
	if err != nil {
		t.Fatalf("Intervals: %v", err)
	}
	if len(intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(intervals))
	}
	if got := FormatKey(intervals[0].Start); got != "2026-02-13" {
		t.Fatalf("first interval starts %s", got)
	}
	if got := FormatKey(intervals[1].Start); got != "2026-02-16" {
		t.Fatalf("second interval starts %s", got)
	}
}

func TestIntervalsHonorTimeOfDay(t *testing.T) {
	event := model.WeekendEvent{
		ID:         "event-1",
		Title:      "Brunch",
		Type:       model.EventTypePlan,
		WeekendKey: "2026-02-14",
		Days:       []model.Weekday{model.WeekdaySaturday},
		StartTime:  "10:30",
		EndTime:    "12:00",
		Status:     model.EventStatusPlanned,
	}
	intervals, err := Intervals(event, time.UTC)
	if err != nil {
		t.Fatalf("Intervals: %v", err)
	}
	want := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	if !intervals[0].Start.Equal(want) {
		t.Fatalf("start = %v, want %v", intervals[0].Start, want)
	}
	if !intervals[0].End.Equal(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("end = %v", intervals[0].End)
	}
}

func TestWeekendIntersection(t *testing.T) {
	cfg := satSun()

	start := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 14, 20, 0, 0, 0, time.UTC)
	key, days, ok := WeekendIntersection(start, end, cfg, time.UTC)
	if !ok || key != "2026-02-14" {
		t.Fatalf("key = %q, ok=%v", key, ok)
	}
	if len(days) != 1 || days[0] != model.WeekdaySaturday {
		t.Fatalf("days = %v", days)
	}

	end = time.Date(2026, 2, 15, 23, 0, 0, 0, time.UTC)
	_, days, ok = WeekendIntersection(start, end, cfg, time.UTC)
	if !ok || len(days) != 2 {
		t.Fatalf("expected Sat+Sun, got %v", days)
	}

	start = time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)
	end = time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)
	if _, _, ok := WeekendIntersection(start, end, cfg, time.UTC); ok {
		t.Fatal("Mon..Thu should not intersect a weekend")
	}
}

func TestWeekendKeyRespectsTimezone(t *testing.T) {
	cfg := satSun()
	tokyo := time.FixedZone("UTC+9", 9*3600)

	// 2026-02-13 22:00 UTC is already Saturday the 14th in UTC+9.
	instant := time.Date(2026, 2, 13, 22, 0, 0, 0, time.UTC)
	if _, ok := WeekendKey(instant, cfg, time.UTC); ok {
		t.Fatal("still Friday in UTC")
	}
	key, ok := WeekendKey(instant, cfg, tokyo)
	if !ok || key != "2026-02-14" {
		t.Fatalf("UTC+9 key = %q, ok=%v", key, ok)
	}
}
