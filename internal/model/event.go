package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEventType   = errors.New("model: invalid event type")
	ErrInvalidEventStatus = errors.New("model: invalid event status")
	ErrInvalidDay         = errors.New("model: invalid day")
)

type EventType string

const (
	EventTypePlan EventType = "plan"
	EventTypeIdea EventType = "idea"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypePlan, EventTypeIdea:
		return true
	default:
		return false
	}
}

type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planned"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPlanned, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// WeekendEvent is a planned activity anchored to a weekend key. It is soft
// deleted (DeletedAt set) rather than purged so the sync engine can resolve
// conflicts against the remote snapshot.
type WeekendEvent struct {
	ID                     string      `json:"id"`
	Title                  string      `json:"title"`
	Type                   EventType   `json:"type"`
	CalendarID             string      `json:"calendar_id,omitempty"`
	WeekendKey             string      `json:"weekend_key"`
	Days                   []Weekday   `json:"days"`
	StartTime              string      `json:"start_time,omitempty"`
	EndTime                string      `json:"end_time,omitempty"`
	OwnerID                string      `json:"owner_id"`
	ExternalCalendarLinkID string      `json:"external_calendar_link_id,omitempty"`
	Status                 EventStatus `json:"status"`
	CompletedAt            *time.Time  `json:"completed_at,omitempty"`
	CancelledAt            *time.Time  `json:"cancelled_at,omitempty"`
	ClientUpdatedAt        time.Time   `json:"client_updated_at"`
	ServerCreatedAt        *time.Time  `json:"server_created_at,omitempty"`
	ServerUpdatedAt        *time.Time  `json:"server_updated_at,omitempty"`
	DeletedAt              *time.Time  `json:"deleted_at,omitempty"`
}

func (e WeekendEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: event id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("model: event title is required")
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEventType, e.Type)
	}
	if !e.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEventStatus, e.Status)
	}
	if strings.TrimSpace(e.WeekendKey) == "" {
		return errors.New("model: event weekend key is required")
	}
	for _, d := range e.Days {
		if !d.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
	}
	switch e.Status {
	case EventStatusCompleted:
		if e.CompletedAt == nil {
			return errors.New("model: completed_at is required when status is completed")
		}
		if e.CancelledAt != nil {
			return errors.New("model: cancelled_at must be nil when status is completed")
		}
	case EventStatusCancelled:
		if e.CancelledAt == nil {
			return errors.New("model: cancelled_at is required when status is cancelled")
		}
		if e.CompletedAt != nil {
			return errors.New("model: completed_at must be nil when status is cancelled")
		}
	default:
		if e.CompletedAt != nil || e.CancelledAt != nil {
			return errors.New("model: terminal timestamps must be nil when status is planned")
		}
	}
	return nil
}

// MarkCompleted transitions the event to completed, clearing any cancelled
// timestamp from a previous transition.
func (e *WeekendEvent) MarkCompleted(at time.Time) {
	e.Status = EventStatusCompleted
	e.CompletedAt = &at
	e.CancelledAt = nil
	e.ClientUpdatedAt = at
}

// MarkCancelled transitions the event to cancelled, clearing any completed
// timestamp from a previous transition.
func (e *WeekendEvent) MarkCancelled(at time.Time) {
	e.Status = EventStatusCancelled
	e.CancelledAt = &at
	e.CompletedAt = nil
	e.ClientUpdatedAt = at
}

// Reopen returns the event to planned and clears both terminal timestamps.
func (e *WeekendEvent) Reopen(at time.Time) {
	e.Status = EventStatusPlanned
	e.CompletedAt = nil
	e.CancelledAt = nil
	e.ClientUpdatedAt = at
}

func (e *WeekendEvent) SoftDelete(at time.Time) {
	e.DeletedAt = &at
	e.ClientUpdatedAt = at
}

func (e WeekendEvent) IsDeleted() bool {
	return e.DeletedAt != nil
}
