package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

var (
	ErrSignedOut        = errors.New("app: not signed in")
	ErrUnknownEvent     = errors.New("app: unknown event")
	ErrUnknownCalendar  = errors.New("app: unknown calendar")
	ErrEventNotEditable = errors.New("app: event is deleted")
)

// AddEvent validates and queues a new event. The event appears in merged
// views immediately and reaches the remote service through the sync engine.
func (a *AppState) AddEvent(ev model.WeekendEvent, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OwnerID == "" {
		ev.OwnerID = a.userID
	}
	if ev.CalendarID == "" {
		ev.CalendarID = a.selectedCalendarID
	}
	if ev.Status == "" {
		ev.Status = model.EventStatusPlanned
	}
	ev.ClientUpdatedAt = now.UTC()
	if err := ev.Validate(); err != nil {
		return err
	}
	return a.enqueueUpsertLocked(ev)
}

// UpdateEvent replaces an event's payload and queues the upsert.
func (a *AppState) UpdateEvent(ev model.WeekendEvent, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	current, ok := a.eventByIDLocked(ev.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.ID)
	}
	if current.IsDeleted() {
		return ErrEventNotEditable
	}
	ev.OwnerID = current.OwnerID
	ev.ClientUpdatedAt = now.UTC()
	if err := ev.Validate(); err != nil {
		return err
	}
	return a.enqueueUpsertLocked(ev)
}

// DeleteEvent soft-deletes locally and queues the remote delete. The event
// disappears from merged views ahead of confirmation.
func (a *AppState) DeleteEvent(id string, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	ev, ok := a.eventByIDLocked(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, id)
	}
	ev.SoftDelete(now.UTC())
	a.replaceSnapshotEventLocked(ev)
	return a.enqueueLocked(model.PendingSyncOperation{
		Type:     model.SyncOpDeleteEvent,
		EntityID: id,
	})
}

// CompleteEvent marks an event completed and queues the upsert.
func (a *AppState) CompleteEvent(id string, now time.Time) error {
	return a.transitionEvent(id, now, (*model.WeekendEvent).MarkCompleted)
}

// CancelEvent marks an event cancelled and queues the upsert.
func (a *AppState) CancelEvent(id string, now time.Time) error {
	return a.transitionEvent(id, now, (*model.WeekendEvent).MarkCancelled)
}

// ReopenEvent returns a completed or cancelled event to planned.
func (a *AppState) ReopenEvent(id string, now time.Time) error {
	return a.transitionEvent(id, now, (*model.WeekendEvent).Reopen)
}

func (a *AppState) transitionEvent(id string, now time.Time, apply func(*model.WeekendEvent, time.Time)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	ev, ok := a.eventByIDLocked(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, id)
	}
	if ev.IsDeleted() {
		return ErrEventNotEditable
	}
	apply(&ev, now.UTC())
	return a.enqueueUpsertLocked(ev)
}

// SetConfiguration replaces the weekend configuration. Persisted
// immediately; a valid configuration moves the route past onboarding.
func (a *AppState) SetConfiguration(cfg model.WeekendConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configuration = &cfg
	if err := a.coord.SaveImmediate(docConfiguration, cfg); err != nil {
		return err
	}
	a.notifyLocked(ChangeConfiguration)
	return nil
}

// SetProtection marks or unmarks a weekend as protected.
func (a *AppState) SetProtection(weekendKey string, on bool, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	if on {
		p := model.WeekendProtection{UserID: a.userID, WeekendKey: weekendKey, CreatedAt: now.UTC()}
		if err := p.Validate(); err != nil {
			return err
		}
		a.protections[weekendKey] = p
	} else {
		delete(a.protections, weekendKey)
	}
	a.saveCollectionLocked(docProtections, a.protections)
	a.notifyLocked(ChangeOverlays)
	return nil
}

// AddLeaveDay records an annual-leave day; the date joins the weekend-window
// association for adjacent weekends.
func (a *AppState) AddLeaveDay(date, note string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	leave := model.AnnualLeaveDay{
		ID:     uuid.NewString(),
		UserID: a.userID,
		Date:   date,
		Note:   note,
	}
	if err := leave.Validate(); err != nil {
		return err
	}
	a.leaveDays[date] = leave
	a.saveCollectionLocked(docLeaveDays, a.leaveDays)
	a.notifyLocked(ChangeOverlays)
	return nil
}

// RemoveLeaveDay drops the leave day for a date; unknown dates are a no-op.
func (a *AppState) RemoveLeaveDay(date string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.leaveDays[date]; !ok {
		return
	}
	delete(a.leaveDays, date)
	a.saveCollectionLocked(docLeaveDays, a.leaveDays)
	a.notifyLocked(ChangeOverlays)
}

// AddReminder records a dated personal reminder.
func (a *AppState) AddReminder(date, title, clock string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return ErrSignedOut
	}
	r := model.PersonalReminder{
		ID:     uuid.NewString(),
		UserID: a.userID,
		Date:   date,
		Title:  title,
		Time:   clock,
	}
	if err := r.Validate(); err != nil {
		return err
	}
	a.reminders = append(a.reminders, r)
	a.saveCollectionLocked(docReminders, a.reminders)
	a.notifyLocked(ChangeOverlays)
	return nil
}

// SelectCalendar switches the planner's active calendar.
func (a *AppState) SelectCalendar(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	found := false
	for _, c := range a.calendars {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownCalendar, id)
	}
	a.selectedCalendarID = id
	if err := a.coord.SaveImmediate(docSelection, id); err != nil {
		return err
	}
	a.notifyLocked(ChangeEvents)
	return nil
}

// MarkNoticeRead marks a notice read remotely, then locally when the remote
// confirms a row changed. The local copy is never updated speculatively.
func (a *AppState) MarkNoticeRead(ctx context.Context, id string, now time.Time) error {
	updated, err := a.remote.MarkNoticeRead(ctx, id)
	if err != nil {
		return err
	}
	if !updated {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.notices {
		if a.notices[i].ID == id {
			a.notices[i].MarkRead(now.UTC())
			break
		}
	}
	a.saveCollectionLocked(docNotices, a.notices)
	a.notifyLocked(ChangeNotices)
	return nil
}

// SetMonthlyGoal writes the goal remotely, then stores it locally.
func (a *AppState) SetMonthlyGoal(ctx context.Context, goal model.MonthlyGoal) error {
	a.mu.Lock()
	if !a.signedIn {
		a.mu.Unlock()
		return ErrSignedOut
	}
	if goal.UserID == "" {
		goal.UserID = a.userID
	}
	a.mu.Unlock()

	if err := goal.Validate(); err != nil {
		return err
	}
	if err := a.remote.UpsertGoal(ctx, goal); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.goals[goal.Key()] = goal
	a.saveCollectionLocked(docGoals, a.goals)
	a.notifyLocked(ChangeGoals)
	return nil
}

// ForceRetrySync resets backoff on every queued operation and triggers an
// immediate retry pass.
func (a *AppState) ForceRetrySync(reason string) error {
	return a.engine.ForceRetry(reason)
}

// RefreshFromRemote replaces the remote snapshots and persists them. Pending
// local operations keep precedence in merged views.
func (a *AppState) RefreshFromRemote(ctx context.Context) error {
	events, err := a.remote.ListEvents(ctx)
	if err != nil {
		return err
	}
	calendars, err := a.remote.ListCalendars(ctx)
	if err != nil {
		return err
	}
	notices, err := a.remote.ListNotices(ctx)
	if err != nil {
		return err
	}
	goals, err := a.remote.ListGoals(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = events
	a.calendars = calendars
	a.notices = notices
	a.goals = make(map[string]model.MonthlyGoal, len(goals))
	for _, g := range goals {
		a.goals[g.Key()] = g
	}
	if a.selectedCalendarID == "" && len(a.calendars) > 0 {
		a.selectedCalendarID = a.calendars[0].ID
	}
	a.saveCollectionLocked(docEvents, a.events)
	a.saveCollectionLocked(docCalendars, a.calendars)
	a.saveCollectionLocked(docNotices, a.notices)
	a.saveCollectionLocked(docGoals, a.goals)
	a.notifyLocked(ChangeEvents)
	a.notifyLocked(ChangeCalendars)
	a.notifyLocked(ChangeNotices)
	a.notifyLocked(ChangeGoals)
	log.Debug("app: refreshed from remote",
		"events", len(events), "calendars", len(calendars), "notices", len(notices))
	return nil
}

func (a *AppState) enqueueUpsertLocked(ev model.WeekendEvent) error {
	a.replaceSnapshotEventLocked(ev)
	return a.enqueueLocked(model.PendingSyncOperation{
		Type:       model.SyncOpUpsertEvent,
		EntityID:   ev.ID,
		Event:      &ev,
		CalendarID: ev.CalendarID,
	})
}

func (a *AppState) enqueueLocked(op model.PendingSyncOperation) error {
	if err := a.queue.Enqueue(op); err != nil {
		return err
	}
	if a.engine != nil {
		a.engine.Notify()
	}
	a.saveCollectionLocked(docEvents, a.events)
	a.notifyLocked(ChangeEvents)
	return nil
}

func (a *AppState) eventByIDLocked(id string) (model.WeekendEvent, bool) {
	for _, ev := range a.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.WeekendEvent{}, false
}

// replaceSnapshotEventLocked keeps the cached snapshot broadly current so a
// restart before the queue drains still shows the edit.
func (a *AppState) replaceSnapshotEventLocked(ev model.WeekendEvent) {
	for i := range a.events {
		if a.events[i].ID == ev.ID {
			a.events[i] = ev
			return
		}
	}
	a.events = append(a.events, ev)
}
