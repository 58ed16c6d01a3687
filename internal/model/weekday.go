package model

import "time"

// Weekday is the raw-string day enum used across cache documents and the
// remote contract. Values are stable; do not rename.
type Weekday string

const (
	WeekdayMonday    Weekday = "Mon"
	WeekdayTuesday   Weekday = "Tue"
	WeekdayWednesday Weekday = "Wed"
	WeekdayThursday  Weekday = "Thu"
	WeekdayFriday    Weekday = "Fri"
	WeekdaySaturday  Weekday = "Sat"
	WeekdaySunday    Weekday = "Sun"
)

func (d Weekday) IsValid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday,
		WeekdayFriday, WeekdaySaturday, WeekdaySunday:
		return true
	default:
		return false
	}
}

// ISO returns the ISO-8601 weekday index (Mon=1 .. Sun=7), or 0 when invalid.
func (d Weekday) ISO() int {
	switch d {
	case WeekdayMonday:
		return 1
	case WeekdayTuesday:
		return 2
	case WeekdayWednesday:
		return 3
	case WeekdayThursday:
		return 4
	case WeekdayFriday:
		return 5
	case WeekdaySaturday:
		return 6
	case WeekdaySunday:
		return 7
	default:
		return 0
	}
}

func (d Weekday) TimeWeekday() time.Weekday {
	switch d {
	case WeekdayMonday:
		return time.Monday
	case WeekdayTuesday:
		return time.Tuesday
	case WeekdayWednesday:
		return time.Wednesday
	case WeekdayThursday:
		return time.Thursday
	case WeekdayFriday:
		return time.Friday
	case WeekdaySaturday:
		return time.Saturday
	default:
		return time.Sunday
	}
}

func WeekdayFromTime(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return WeekdayMonday
	case time.Tuesday:
		return WeekdayTuesday
	case time.Wednesday:
		return WeekdayWednesday
	case time.Thursday:
		return WeekdayThursday
	case time.Friday:
		return WeekdayFriday
	case time.Saturday:
		return WeekdaySaturday
	default:
		return WeekdaySunday
	}
}
