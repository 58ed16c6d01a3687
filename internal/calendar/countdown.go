package calendar

import (
	"fmt"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

type CountdownPhase string

const (
	PhaseCountingDown  CountdownPhase = "countingDown"
	PhaseWeekendBurst  CountdownPhase = "weekendBurst"
	PhaseWeekendActive CountdownPhase = "weekendActive"
)

// burstWindow is the short celebration window right after the weekend
// starts.
const burstWindow = 3 * time.Second

// WindowOverride replaces the computed weekend window start, typically
// because associated annual leave begins before the nominal weekend.
type WindowOverride struct {
	WeekendKey    string
	Start         time.Time
	StartDayLabel string
}

// CountdownState is a pure function of (now, timezone, configuration,
// optional override); see ComputeCountdownState.
type CountdownState struct {
	Phase         CountdownPhase
	WeekendKey    string
	CenterLabel   string
	StartDayLabel string
	WindowStart   time.Time
	WindowEnd     time.Time
}

// IsOffDayMode is true for both the burst and active phases.
func (s CountdownState) IsOffDayMode() bool {
	return s.Phase == PhaseWeekendBurst || s.Phase == PhaseWeekendActive
}

// ComputeCountdownState derives the workweek countdown for now. The window
// targets the weekend of now's planner week, which by construction is the
// current or upcoming one. When the configuration includes Friday evening
// and the weekend does not already start on Friday, the window opens on
// Friday at the configured time instead of midnight of the first weekend
// day. A non-nil override replaces the start instant and start-day label
// wholesale.
func ComputeCountdownState(now time.Time, loc *time.Location, cfg model.WeekendConfiguration, override *WindowOverride) CountdownState {
	key := PlannerWeekKey(now, cfg, loc)
	if override != nil && override.WeekendKey != "" {
		key = override.WeekendKey
	}
	start, end := weekendWindow(key, cfg, loc)

	label := start.Weekday().String()
	if override != nil {
		start = override.Start
		if override.StartDayLabel != "" {
			label = override.StartDayLabel
		} else {
			label = override.Start.Weekday().String()
		}
	}

	state := CountdownState{
		WeekendKey:    key,
		StartDayLabel: label,
		WindowStart:   start,
		WindowEnd:     end,
	}
	switch {
	case now.Before(start):
		state.Phase = PhaseCountingDown
		state.CenterLabel = formatCountdown(start.Sub(now))
	case now.Sub(start) < burstWindow:
		state.Phase = PhaseWeekendBurst
		state.CenterLabel = "Weekend!"
	default:
		state.Phase = PhaseWeekendActive
		state.CenterLabel = "Enjoy your weekend"
	}
	return state
}

// weekendWindow returns the [start, end) instants of a weekend key's nominal
// window in loc.
func weekendWindow(key string, cfg model.WeekendConfiguration, loc *time.Location) (time.Time, time.Time) {
	dates, err := WeekendDates(key, cfg, loc)
	if err != nil || len(dates) == 0 {
		return time.Time{}, time.Time{}
	}
	start := dates[0]
	end := dates[len(dates)-1].AddDate(0, 0, 1)
	if cfg.IncludeFridayEvening && model.WeekdayFromTime(start.Weekday()) != model.WeekdayFriday {
		anchorISO := isoWeekday(start)
		friday := start.AddDate(0, 0, dayDelta(model.WeekdayFriday, anchorISO))
		if friday.Before(start) {
			start = friday.Add(time.Duration(cfg.FridayEveningStartHour)*time.Hour +
				time.Duration(cfg.FridayEveningStartMinute)*time.Minute)
		}
	}
	return start, end
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
