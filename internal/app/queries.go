package app

import (
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/calendar"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
	"github.com/MazharElstub/The-Weekend-sub002/internal/notify"
	"github.com/MazharElstub/The-Weekend-sub002/internal/report"
	"github.com/MazharElstub/The-Weekend-sub002/internal/syncer"
)

// Readiness is the derived planning-completeness state of a weekend.
type Readiness string

const (
	ReadinessUnplanned        Readiness = "unplanned"
	ReadinessPartiallyPlanned Readiness = "partiallyPlanned"
	ReadinessReady            Readiness = "ready"
	ReadinessProtected        Readiness = "protected"
)

// EventsForSelectedCalendar is the authoritative merged view for the active
// calendar: remote snapshot overlaid with pending local operations.
func (a *AppState) EventsForSelectedCalendar() []model.WeekendEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mergedEventsLocked()
}

func (a *AppState) mergedEventsLocked() []model.WeekendEvent {
	return syncer.MergedEventsForCalendar(a.events, a.selectedCalendarID, a.queue.Operations())
}

// EventsByWeekendKey indexes the merged view by weekend key.
func (a *AppState) EventsByWeekendKey() map[string][]model.WeekendEvent {
	merged := a.EventsForSelectedCalendar()
	out := make(map[string][]model.WeekendEvent)
	for _, ev := range merged {
		out[ev.WeekendKey] = append(out[ev.WeekendKey], ev)
	}
	return out
}

// Calendars returns a copy of the calendar list.
func (a *AppState) Calendars() []model.PlannerCalendar {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.PlannerCalendar, len(a.calendars))
	copy(out, a.calendars)
	return out
}

// SelectedCalendarID returns the active calendar id, possibly empty.
func (a *AppState) SelectedCalendarID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selectedCalendarID
}

// Notices returns a copy of the notice list.
func (a *AppState) Notices() []model.UserNotice {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.UserNotice, len(a.notices))
	copy(out, a.notices)
	return out
}

// UnreadNoticeCount counts notices without a read timestamp.
func (a *AppState) UnreadNoticeCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, notice := range a.notices {
		if !notice.IsRead() {
			n++
		}
	}
	return n
}

// Configuration returns the active weekend configuration and whether one is
// set.
func (a *AppState) Configuration() (model.WeekendConfiguration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.configuration == nil {
		return model.WeekendConfiguration{}, false
	}
	return *a.configuration, true
}

// SyncState derives an entity's sync state from the pending queue.
func (a *AppState) SyncState(entityID string, now time.Time) model.SyncState {
	return a.queue.StateFor(entityID, now)
}

// PendingOperationCount is the number of queued, unconfirmed mutations.
func (a *AppState) PendingOperationCount() int {
	return a.queue.Len()
}

// PendingOperations returns a copy of the queued sync operations, oldest
// first.
func (a *AppState) PendingOperations() []model.PendingSyncOperation {
	return a.queue.Operations()
}

// LeaveDates projects the recorded leave days into the calendar package's
// date-set form.
func (a *AppState) LeaveDates() calendar.LeaveDates {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.leaveDatesLocked()
}

func (a *AppState) leaveDatesLocked() calendar.LeaveDates {
	out := make(calendar.LeaveDates, len(a.leaveDays))
	for date := range a.leaveDays {
		out[date] = true
	}
	return out
}

// Readiness derives a weekend's planning state. Protection dominates; a
// weekend is ready when every visible off day is covered by a planned or
// completed event, partially planned when at least one event exists, and
// unplanned otherwise.
func (a *AppState) Readiness(weekendKey string) Readiness {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.protections[weekendKey]; ok {
		return ReadinessProtected
	}
	cfg := a.configurationOrDefaultLocked()

	covered := make(map[model.Weekday]bool)
	count := 0
	for _, ev := range a.mergedEventsLocked() {
		if ev.WeekendKey != weekendKey || ev.Type != model.EventTypePlan {
			continue
		}
		if ev.Status == model.EventStatusCancelled {
			continue
		}
		count++
		for _, day := range ev.Days {
			covered[day] = true
		}
	}
	if count == 0 {
		return ReadinessUnplanned
	}

	visible, err := calendar.VisiblePlannerDays(weekendKey, a.leaveDatesLocked(), cfg, a.loc)
	if err != nil {
		return ReadinessPartiallyPlanned
	}
	for _, day := range visible {
		if !covered[day] {
			return ReadinessPartiallyPlanned
		}
	}
	return ReadinessReady
}

// NextUpcomingWeekendKey is the planner-week key for now.
func (a *AppState) NextUpcomingWeekendKey(now time.Time) string {
	a.mu.Lock()
	cfg := a.configurationOrDefaultLocked()
	a.mu.Unlock()
	return calendar.PlannerWeekKey(now, cfg, a.loc)
}

// Countdown computes the workweek countdown, letting associated leave pull
// the window start earlier than the configured weekend start.
func (a *AppState) Countdown(now time.Time) calendar.CountdownState {
	a.mu.Lock()
	cfg := a.configurationOrDefaultLocked()
	leaves := a.leaveDatesLocked()
	a.mu.Unlock()

	override := calendar.CountdownWindowContext(now, leaves, cfg, a.loc)
	return calendar.ComputeCountdownState(now, a.loc, cfg, override)
}

// ResolveNotificationTap interprets a push payload tap, falling back to the
// next upcoming weekend key when the payload carries none.
func (a *AppState) ResolveNotificationTap(requestID string, payload notify.TapPayload, actionID notify.ActionID, now time.Time) notify.TapDecision {
	return notify.ResolveTapDecision(requestID, payload, actionID, func() string {
		return a.NextUpcomingWeekendKey(now)
	})
}

// WeeklyReport summarizes the merged view per weekend.
func (a *AppState) WeeklyReport() []report.WeekendSummary {
	return report.WeeklyReport(a.EventsForSelectedCalendar())
}

// CurrentStreak counts consecutive weekends with a completed event.
func (a *AppState) CurrentStreak(now time.Time) int {
	a.mu.Lock()
	cfg := a.configurationOrDefaultLocked()
	a.mu.Unlock()
	return report.CurrentStreak(a.EventsForSelectedCalendar(), now, cfg, a.loc)
}

// GoalProgress reports a month's progress against its stored goal, if any.
func (a *AppState) GoalProgress(month string) (report.GoalProgress, bool) {
	a.mu.Lock()
	goal, ok := a.goals[a.userID+"/"+month]
	a.mu.Unlock()
	if !ok {
		return report.GoalProgress{}, false
	}
	return report.ProgressFor(goal, a.EventsForSelectedCalendar()), true
}

func (a *AppState) configurationOrDefaultLocked() model.WeekendConfiguration {
	if a.configuration != nil {
		return *a.configuration
	}
	return model.DefaultWeekendConfiguration()
}
