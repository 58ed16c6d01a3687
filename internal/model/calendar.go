package model

import (
	"errors"
	"strings"
	"time"
)

// PlannerCalendar is a personal or shared calendar events attribute to.
// Events carry the calendar id as a fallback attribution when no explicit
// attribution row exists remotely.
type PlannerCalendar struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id"`
	ShareCode   string    `json:"share_code,omitempty"`
	MemberLimit int       `json:"member_limit"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c PlannerCalendar) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: calendar id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: calendar name is required")
	}
	if c.MemberLimit < 0 {
		return errors.New("model: calendar member limit must not be negative")
	}
	if c.MemberCount < 0 {
		return errors.New("model: calendar member count must not be negative")
	}
	if c.MemberLimit > 0 && c.MemberCount > c.MemberLimit {
		return errors.New("model: calendar member count exceeds limit")
	}
	return nil
}

func (c PlannerCalendar) IsShared() bool {
	return c.ShareCode != ""
}
