package model

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidHolidayRegion = errors.New("model: invalid public holiday region preference")

type HolidayRegion string

const (
	HolidayRegionDevice HolidayRegion = "device"
	HolidayRegionNone   HolidayRegion = "none"
)

func (r HolidayRegion) IsValid() bool {
	switch r {
	case HolidayRegionDevice, HolidayRegionNone:
		return true
	default:
		return false
	}
}

// WeekendConfiguration defines which weekdays count as "the weekend". It is
// an immutable value replaced wholesale on change; the day set is not
// restricted to Sat/Sun and may be any non-empty subset, adjacent or not.
type WeekendConfiguration struct {
	WeekendDays              []Weekday     `json:"weekend_days"`
	IncludeFridayEvening     bool          `json:"include_friday_evening"`
	FridayEveningStartHour   int           `json:"friday_evening_start_hour"`
	FridayEveningStartMinute int           `json:"friday_evening_start_minute"`
	IncludePublicHolidays    bool          `json:"include_public_holidays"`
	PublicHolidayRegion      HolidayRegion `json:"public_holiday_region"`
}

func DefaultWeekendConfiguration() WeekendConfiguration {
	return WeekendConfiguration{
		WeekendDays:              []Weekday{WeekdaySaturday, WeekdaySunday},
		IncludeFridayEvening:     false,
		FridayEveningStartHour:   18,
		FridayEveningStartMinute: 0,
		IncludePublicHolidays:    false,
		PublicHolidayRegion:      HolidayRegionDevice,
	}
}

func (c WeekendConfiguration) Validate() error {
	if len(c.WeekendDays) == 0 {
		return errors.New("model: weekend configuration requires at least one day")
	}
	seen := make(map[Weekday]bool, len(c.WeekendDays))
	for _, d := range c.WeekendDays {
		if !d.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
		if seen[d] {
			return fmt.Errorf("model: duplicate weekend day %q", d)
		}
		seen[d] = true
	}
	if c.FridayEveningStartHour < 0 || c.FridayEveningStartHour > 23 {
		return errors.New("model: friday evening start hour out of range")
	}
	if c.FridayEveningStartMinute < 0 || c.FridayEveningStartMinute > 59 {
		return errors.New("model: friday evening start minute out of range")
	}
	if !c.PublicHolidayRegion.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidHolidayRegion, c.PublicHolidayRegion)
	}
	return nil
}

func (c WeekendConfiguration) HasDay(d Weekday) bool {
	for _, wd := range c.WeekendDays {
		if wd == d {
			return true
		}
	}
	return false
}

// SortedDays returns the configured days in ISO order (Mon..Sun).
func (c WeekendConfiguration) SortedDays() []Weekday {
	out := make([]Weekday, len(c.WeekendDays))
	copy(out, c.WeekendDays)
	sort.Slice(out, func(i, j int) bool { return out[i].ISO() < out[j].ISO() })
	return out
}
