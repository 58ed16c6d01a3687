package calendar

import (
	"testing"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func leaveSet(dates ...string) LeaveDates {
	out := make(LeaveDates, len(dates))
	for _, d := range dates {
		out[d] = true
	}
	return out
}

func TestShortLeaveRunAttachesToPreviousWeekend(t *testing.T) {
	cfg := satSun()
	leaves := leaveSet("2026-02-16", "2026-02-17") // Mon, Tue

	_, trailing, err := AssociatedLeave("2026-02-14", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(trailing) != 2 {
		t.Fatalf("trailing = %v", trailing)
	}
	if FormatKey(trailing[0]) != "2026-02-16" || FormatKey(trailing[1]) != "2026-02-17" {
		t.Fatalf("trailing dates = %v", trailing)
	}

	leading, _, err := AssociatedLeave("2026-02-21", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(leading) != 0 {
		t.Fatalf("next weekend should get no leading leave, got %v", leading)
	}
}

func TestShortLeaveExtendsWeekendPastness(t *testing.T) {
	cfg := satSun()
	leaves := leaveSet("2026-02-16", "2026-02-17")

	for _, tc := range []struct {
		ref  string
		past bool
	}{
		{"2026-02-15", false},
		{"2026-02-16", false},
		{"2026-02-17", false},
		{"2026-02-18", true},
	} {
		ref, _ := ParseKey(tc.ref, time.UTC)
		past, err := IsWeekendInPast("2026-02-14", ref, leaves, cfg, time.UTC)
		if err != nil {
			t.Fatalf("IsWeekendInPast: %v", err)
		}
		if past != tc.past {
			t.Fatalf("ref %s: past = %v, want %v", tc.ref, past, tc.past)
		}
	}
}

func TestFullWeekLeaveAttachesToFollowingWeekend(t *testing.T) {
	cfg := satSun()
	leaves := leaveSet("2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20")

	_, trailing, err := AssociatedLeave("2026-02-14", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(trailing) != 0 {
		t.Fatalf("full-week run must not trail the previous weekend, got %v", trailing)
	}

	ref, _ := ParseKey("2026-02-16", time.UTC)
	past, err := IsWeekendInPast("2026-02-14", ref, leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("IsWeekendInPast: %v", err)
	}
	if !past {
		t.Fatal("previous weekend should be past once the full-week leave starts")
	}

	leading, _, err := AssociatedLeave("2026-02-21", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(leading) != 5 {
		t.Fatalf("leading = %v", leading)
	}
	if FormatKey(leading[0]) != "2026-02-16" || FormatKey(leading[4]) != "2026-02-20" {
		t.Fatalf("leading dates = %v", leading)
	}
}

func TestFloatingRunSplitsAtMidpoint(t *testing.T) {
	cfg := satSun()
	// Tue..Thu between the weekends: Tue is closer to the previous weekend,
	// Thu to the next, Wed ties forward.
	leaves := leaveSet("2026-02-17", "2026-02-18", "2026-02-19")

	_, trailing, err := AssociatedLeave("2026-02-14", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(trailing) != 1 || FormatKey(trailing[0]) != "2026-02-17" {
		t.Fatalf("trailing = %v", trailing)
	}

	leading, _, err := AssociatedLeave("2026-02-21", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(leading) != 2 {
		t.Fatalf("leading = %v", leading)
	}
	if FormatKey(leading[0]) != "2026-02-18" || FormatKey(leading[1]) != "2026-02-19" {
		t.Fatalf("leading dates = %v", leading)
	}
}

func TestNonAdjacentLeaveAttachesByProximity(t *testing.T) {
	cfg := tueWed()
	// Weekend days Tue+Wed; a lone Sunday leave sits closer to the next
	// weekend (Tue 17th) than to the previous one (Wed 11th).
	leaves := leaveSet("2026-02-15")

	leading, _, err := AssociatedLeave("2026-02-17", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(leading) != 1 || FormatKey(leading[0]) != "2026-02-15" {
		t.Fatalf("leading = %v", leading)
	}

	_, trailing, err := AssociatedLeave("2026-02-10", leaves, cfg, time.UTC)
	if err != nil {
		t.Fatalf("AssociatedLeave: %v", err)
	}
	if len(trailing) != 0 {
		t.Fatalf("previous weekend should not claim the Sunday, got %v", trailing)
	}
}

func TestVisiblePlannerDays(t *testing.T) {
	cfg := satSun()

	days, err := VisiblePlannerDays("2026-02-14", leaveSet("2026-02-16", "2026-02-17"), cfg, time.UTC)
	if err != nil {
		t.Fatalf("VisiblePlannerDays: %v", err)
	}
	want := []model.Weekday{model.WeekdaySaturday, model.WeekdaySunday, model.WeekdayMonday, model.WeekdayTuesday}
	if len(days) != len(want) {
		t.Fatalf("days = %v", days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("days = %v, want %v", days, want)
		}
	}

	full := leaveSet("2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20")
	days, err = VisiblePlannerDays("2026-02-21", full, cfg, time.UTC)
	if err != nil {
		t.Fatalf("VisiblePlannerDays: %v", err)
	}
	if len(days) != 7 || days[0] != model.WeekdayMonday || days[6] != model.WeekdaySunday {
		t.Fatalf("full-week window days = %v", days)
	}
}

func TestPlannerDisplayMappingsAreInverse(t *testing.T) {
	cfg := satSun()
	full := leaveSet("2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20")

	// The "Wed" slot of the leave-extended 2026-02-21 weekend is the leave
	// Wednesday, not the Wednesday after the weekend.
	d, ok := PlannerDisplayDate("2026-02-21", model.WeekdayWednesday, full, cfg, time.UTC)
	if !ok || FormatKey(d) != "2026-02-18" {
		t.Fatalf("display date = %v, ok=%v", d, ok)
	}

	day, ok := PlannerDisplayDay(d, "2026-02-21", full, cfg, time.UTC)
	if !ok || day != model.WeekdayWednesday {
		t.Fatalf("display day = %v, ok=%v", day, ok)
	}

	if _, ok := PlannerDisplayDay(date(2026, 2, 12), "2026-02-21", full, cfg, time.UTC); ok {
		t.Fatal("date outside the window should not map to a slot")
	}
}

func TestCountdownWindowContextTargetsLeaveStart(t *testing.T) {
	cfg := satSun()
	full := leaveSet("2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19", "2026-02-20")

	ref := time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)
	override := CountdownWindowContext(ref, full, cfg, time.UTC)
	if override == nil {
		t.Fatal("expected an override for leave-extended weekend")
	}
	if override.WeekendKey != "2026-02-21" {
		t.Fatalf("override key = %s", override.WeekendKey)
	}
	if FormatKey(override.Start) != "2026-02-16" {
		t.Fatalf("override start = %v", override.Start)
	}
	if override.StartDayLabel != "Monday" {
		t.Fatalf("override label = %s", override.StartDayLabel)
	}

	state := ComputeCountdownState(ref, time.UTC, cfg, override)
	if state.Phase != PhaseWeekendActive {
		t.Fatalf("leave morning should be off-day mode, got %s", state.Phase)
	}

	if override := CountdownWindowContext(ref, nil, cfg, time.UTC); override != nil {
		t.Fatalf("no leave should mean no override, got %+v", override)
	}
}
