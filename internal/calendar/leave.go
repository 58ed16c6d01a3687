package calendar

import (
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// LeaveDates is the set of annual-leave days, keyed by YYYY-MM-DD.
type LeaveDates map[string]bool

func (l LeaveDates) has(d time.Time) bool {
	return l[FormatKey(d)]
}

// AssociatedLeave determines which leave days attach to the weekend
// identified by key. Leading days precede the weekend (they belonged to the
// gap before it), trailing days follow it. Within the gap between two
// weekends each maximal contiguous run of leave days is split by calendar
// proximity: days closer to the preceding weekend attach to it, days closer
// to the following weekend attach to that one, ties going forward. A run
// covering the entire gap attaches wholly to the following weekend, so a
// full week of leave extends the next weekend backward rather than the
// previous one forward.
func AssociatedLeave(key string, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) (leading, trailing []time.Time, err error) {
	dates, err := WeekendDates(key, cfg, loc)
	if err != nil {
		return nil, nil, err
	}
	first := dates[0]
	last := dates[len(dates)-1]

	prevKey := FormatKey(mustParse(key, loc).AddDate(0, 0, -7))
	nextKey := FormatKey(mustParse(key, loc).AddDate(0, 0, 7))
	prevDates, err := WeekendDates(prevKey, cfg, loc)
	if err != nil {
		return nil, nil, err
	}
	nextDates, err := WeekendDates(nextKey, cfg, loc)
	if err != nil {
		return nil, nil, err
	}

	_, leading = splitGap(prevDates[len(prevDates)-1], first, leaves)
	trailing, _ = splitGap(last, nextDates[0], leaves)
	return leading, trailing, nil
}

func mustParse(key string, loc *time.Location) time.Time {
	t, _ := ParseKey(key, loc)
	return t
}

// daysBetween counts calendar days from a to b by date arithmetic, which
// stays correct across DST transitions.
func daysBetween(a, b time.Time) int {
	n := 0
	for d := a; d.Before(b); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// splitGap assigns the leave days strictly between a preceding weekend's
// last day and a following weekend's first day to one side or the other.
func splitGap(prevEnd, nextStart time.Time, leaves LeaveDates) (toPrev, toNext []time.Time) {
	gapLen := daysBetween(prevEnd, nextStart) - 1
	if gapLen <= 0 {
		return nil, nil
	}

	var run []time.Time
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) == gapLen {
			// Full-gap leave belongs to the following weekend in its
			// entirety; the previous weekend closes on schedule.
			toNext = append(toNext, run...)
			run = nil
			return
		}
		for _, d := range run {
			distPrev := daysBetween(prevEnd, d)
			distNext := daysBetween(d, nextStart)
			if distPrev < distNext {
				toPrev = append(toPrev, d)
			} else {
				toNext = append(toNext, d)
			}
		}
		run = nil
	}

	for d := prevEnd.AddDate(0, 0, 1); d.Before(nextStart); d = d.AddDate(0, 0, 1) {
		if leaves.has(d) {
			run = append(run, d)
		} else {
			flush()
		}
	}
	flush()
	return toPrev, toNext
}

// WindowDates returns the full chronological off-day window for a weekend:
// leading associated leave, the configured weekend days, then trailing
// associated leave.
func WindowDates(key string, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) ([]time.Time, error) {
	leading, trailing, err := AssociatedLeave(key, leaves, cfg, loc)
	if err != nil {
		return nil, err
	}
	weekend, err := WeekendDates(key, cfg, loc)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(leading)+len(weekend)+len(trailing))
	out = append(out, leading...)
	out = append(out, weekend...)
	out = append(out, trailing...)
	return out, nil
}

// IsWeekendInPast reports whether the weekend's full off-day window,
// including trailing associated leave, has elapsed relative to reference.
func IsWeekendInPast(key string, reference time.Time, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) (bool, error) {
	window, err := WindowDates(key, leaves, cfg, loc)
	if err != nil {
		return false, err
	}
	end := window[len(window)-1]
	return DateOnly(reference, loc).After(end), nil
}

// VisiblePlannerDays returns the ordered day enums to display for a weekend,
// merging configured weekend days with associated leave days.
func VisiblePlannerDays(key string, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) ([]model.Weekday, error) {
	window, err := WindowDates(key, leaves, cfg, loc)
	if err != nil {
		return nil, err
	}
	out := make([]model.Weekday, 0, len(window))
	for _, d := range window {
		out = append(out, model.WeekdayFromTime(d.Weekday()))
	}
	return out, nil
}

// PlannerDisplayDate maps a display-day slot back to its concrete date
// within the weekend's off-day window. An attached Wednesday leave day
// resolves to the leave date, not the literal Wednesday of the key's week.
func PlannerDisplayDate(key string, day model.Weekday, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) (time.Time, bool) {
	window, err := WindowDates(key, leaves, cfg, loc)
	if err != nil {
		return time.Time{}, false
	}
	for _, d := range window {
		if model.WeekdayFromTime(d.Weekday()) == day {
			return d, true
		}
	}
	return time.Time{}, false
}

// PlannerDisplayDay is the inverse of PlannerDisplayDate: the display slot a
// concrete date occupies in the weekend's window.
func PlannerDisplayDay(date time.Time, key string, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) (model.Weekday, bool) {
	window, err := WindowDates(key, leaves, cfg, loc)
	if err != nil {
		return "", false
	}
	day := DateOnly(date, loc)
	for _, d := range window {
		if d.Equal(day) {
			return model.WeekdayFromTime(d.Weekday()), true
		}
	}
	return "", false
}

// CountdownWindowContext returns a window override when the next relevant
// weekend has leading associated leave, so the countdown targets the start
// of the leave rather than the nominal weekend start. Returns nil when no
// override applies.
func CountdownWindowContext(reference time.Time, leaves LeaveDates, cfg model.WeekendConfiguration, loc *time.Location) *WindowOverride {
	key := PlannerWeekKey(reference, cfg, loc)
	if past, err := IsWeekendInPast(key, reference, leaves, cfg, loc); err != nil {
		return nil
	} else if past {
		next, err := NextWeekendKey(key, loc)
		if err != nil {
			return nil
		}
		key = next
	}
	leading, _, err := AssociatedLeave(key, leaves, cfg, loc)
	if err != nil || len(leading) == 0 {
		return nil
	}
	start := leading[0]
	return &WindowOverride{
		WeekendKey:    key,
		Start:         start,
		StartDayLabel: start.Weekday().String(),
	}
}
