package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// KeyLayout is the canonical date layout for weekend keys and day keys.
const KeyLayout = "2006-01-02"

const (
	MonthSelectionUpcoming = "upcoming"
	MonthSelectionPrevious = "previous"
)

var ErrInvalidKey = errors.New("calendar: invalid weekend key")

// ParseKey parses a YYYY-MM-DD key into midnight of that date in loc.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return t, nil
}

// FormatKey formats midnight-of-date as a canonical key.
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// DateOnly truncates t to midnight in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// weekStartISO returns the ISO index of the planner week's first day: the
// day after the last configured weekend day. For Sat/Sun weekends the
// planner week runs Mon..Sun.
func weekStartISO(cfg model.WeekendConfiguration) int {
	last := 0
	for _, d := range cfg.WeekendDays {
		if d.ISO() > last {
			last = d.ISO()
		}
	}
	if last == 0 {
		last = 7
	}
	return last%7 + 1
}

// plannerWeekStart returns midnight of the first day of the planner week
// containing date.
func plannerWeekStart(date time.Time, cfg model.WeekendConfiguration, loc *time.Location) time.Time {
	day := DateOnly(date, loc)
	start := weekStartISO(cfg)
	back := (isoWeekday(day) - start + 7) % 7
	return day.AddDate(0, 0, -back)
}

// anchorOffset is the offset (in days from the planner week start) of the
// weekend's anchor day: the chronologically first configured day in the week.
func anchorOffset(cfg model.WeekendConfiguration) int {
	start := weekStartISO(cfg)
	min := 7
	for _, d := range cfg.WeekendDays {
		off := (d.ISO() - start + 7) % 7
		if off < min {
			min = off
		}
	}
	return min
}

// WeekendKey returns the canonical key for a date that falls on a configured
// weekend day, and false otherwise.
func WeekendKey(date time.Time, cfg model.WeekendConfiguration, loc *time.Location) (string, bool) {
	day := DateOnly(date, loc)
	if !cfg.HasDay(model.WeekdayFromTime(day.Weekday())) {
		return "", false
	}
	return PlannerWeekKey(day, cfg, loc), true
}

// PlannerWeekKey returns, for any date, the weekend key of the planner week
// the date belongs to. The week runs from the day after the previous
// weekend's last day through the next weekend's last day, so weekdays map to
// the upcoming weekend and weekend days map to their own.
func PlannerWeekKey(date time.Time, cfg model.WeekendConfiguration, loc *time.Location) string {
	start := plannerWeekStart(date, cfg, loc)
	return FormatKey(start.AddDate(0, 0, anchorOffset(cfg)))
}

// NextWeekendKey returns the key one full cycle (seven days) forward.
func NextWeekendKey(key string, loc *time.Location) (string, error) {
	t, err := ParseKey(key, loc)
	if err != nil {
		return "", err
	}
	return FormatKey(t.AddDate(0, 0, 7)), nil
}

// WeekendDates expands a key into the concrete dates of its configured
// weekend days, in chronological order.
func WeekendDates(key string, cfg model.WeekendConfiguration, loc *time.Location) ([]time.Time, error) {
	anchor, err := ParseKey(key, loc)
	if err != nil {
		return nil, err
	}
	start := anchor.AddDate(0, 0, -anchorOffset(cfg))
	offsets := make([]int, 0, len(cfg.WeekendDays))
	ws := weekStartISO(cfg)
	for _, d := range cfg.WeekendDays {
		offsets = append(offsets, (d.ISO()-ws+7)%7)
	}
	sort.Ints(offsets)
	out := make([]time.Time, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, start.AddDate(0, 0, off))
	}
	return out, nil
}

// MonthSelectionKey classifies a weekend for browsing: "upcoming" for the
// current planner week and anything later, a YYYY-MM-01 month anchor for past
// weekends inside the trailing twelve months, and "previous" for everything
// older.
func MonthSelectionKey(weekendKey string, reference time.Time, cfg model.WeekendConfiguration, loc *time.Location) (string, error) {
	keyDate, err := ParseKey(weekendKey, loc)
	if err != nil {
		return "", err
	}
	current := PlannerWeekKey(reference, cfg, loc)
	if weekendKey >= current {
		return MonthSelectionUpcoming, nil
	}
	ref := DateOnly(reference, loc)
	cutoff := time.Date(ref.Year(), ref.Month()-11, 1, 0, 0, 0, 0, loc)
	if keyDate.Before(cutoff) {
		return MonthSelectionPrevious, nil
	}
	return time.Date(keyDate.Year(), keyDate.Month(), 1, 0, 0, 0, 0, loc).Format(KeyLayout), nil
}

// dayDelta maps a weekday to its offset from the anchor weekday, choosing
// the nearest occurrence: up to three days forward, otherwise backward
// (Sat anchor: Sun -> +1, Mon -> +2, Fri -> -1, Wed -> -3).
func dayDelta(day model.Weekday, anchorISO int) int {
	delta := (day.ISO() - anchorISO + 7) % 7
	if delta > 3 {
		delta -= 7
	}
	return delta
}

// Interval is one concrete span of an event on a single day.
type Interval struct {
	Day   model.Weekday
	Start time.Time
	End   time.Time
}

// Intervals expands an event's weekend key and day set into concrete
// per-day spans. Days outside the configured weekend (Fri, Mon, ...) are
// offset from the key by their nearest-occurrence delta.
func Intervals(event model.WeekendEvent, loc *time.Location) ([]Interval, error) {
	anchor, err := ParseKey(event.WeekendKey, loc)
	if err != nil {
		return nil, err
	}
	anchorISO := isoWeekday(anchor)
	out := make([]Interval, 0, len(event.Days))
	for _, d := range event.Days {
		date := anchor.AddDate(0, 0, dayDelta(d, anchorISO))
		start := date
		if h, m, ok := parseClock(event.StartTime); ok {
			start = date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
		}
		end := date.AddDate(0, 0, 1)
		if h, m, ok := parseClock(event.EndTime); ok {
			end = date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
		}
		if !end.After(start) {
			end = date.AddDate(0, 0, 1)
		}
		out = append(out, Interval{Day: d, Start: start, End: end})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func parseClock(v string) (hour, minute int, ok bool) {
	if len(v) != 5 || v[2] != ':' {
		return 0, 0, false
	}
	h, errH := strconv.Atoi(v[:2])
	m, errM := strconv.Atoi(v[3:])
	if errH != nil || errM != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// WeekendIntersection returns the weekend key overlapped by [start, end] and
// the subset of weekend days intersected, or false when the interval touches
// no configured weekend day.
func WeekendIntersection(start, end time.Time, cfg model.WeekendConfiguration, loc *time.Location) (string, []model.Weekday, bool) {
	if end.Before(start) {
		return "", nil, false
	}
	first := DateOnly(start, loc)
	last := DateOnly(end, loc)
	key := ""
	days := make([]model.Weekday, 0, len(cfg.WeekendDays))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		k, ok := WeekendKey(d, cfg, loc)
		if !ok {
			continue
		}
		if key == "" {
			key = k
		}
		if k != key {
			break
		}
		days = append(days, model.WeekdayFromTime(d.Weekday()))
	}
	if key == "" {
		return "", nil, false
	}
	return key, days, true
}
