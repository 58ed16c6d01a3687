package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AnnualLeaveDay is a user-entered day off keyed by date (YYYY-MM-DD). Leave
// days adjacent to a weekend extend that weekend's off-day window.
type AnnualLeaveDay struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Note   string `json:"note,omitempty"`
}

func (l AnnualLeaveDay) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("model: leave day id is required")
	}
	if !datePattern.MatchString(l.Date) {
		return errors.New("model: leave day date must be formatted YYYY-MM-DD")
	}
	return nil
}

// PersonalReminder is a dated note overlay; it never affects weekend-window
// association.
type PersonalReminder struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Date   string `json:"date"`
	Title  string `json:"title"`
	Time   string `json:"time,omitempty"`
}

func (r PersonalReminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if !datePattern.MatchString(r.Date) {
		return errors.New("model: reminder date must be formatted YYYY-MM-DD")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("model: reminder title is required")
	}
	return nil
}

// WeekendProtection marks a weekend as not to be overbooked or altered
// casually.
type WeekendProtection struct {
	UserID     string    `json:"user_id"`
	WeekendKey string    `json:"weekend_key"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p WeekendProtection) Validate() error {
	if !datePattern.MatchString(p.WeekendKey) {
		return errors.New("model: protection weekend key must be formatted YYYY-MM-DD")
	}
	return nil
}
