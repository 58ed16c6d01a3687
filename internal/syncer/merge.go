package syncer

import "github.com/MazharElstub/The-Weekend-sub002/internal/model"

// MergedEventsForCalendar produces the authoritative event view for one
// calendar: the remote snapshot filtered to the calendar, overlaid with the
// pending local operations. A pending delete removes the entity, a pending
// upsert scoped to this calendar replaces or inserts the local payload, and
// a pending upsert that moved the entity to a different calendar removes it
// from this calendar's view ahead of confirmation. Local pending edits win
// over a conflicting remote value for the same entity id.
func MergedEventsForCalendar(remoteEvents []model.WeekendEvent, calendarID string, pending []model.PendingSyncOperation) []model.WeekendEvent {
	order := make([]string, 0, len(remoteEvents))
	byID := make(map[string]model.WeekendEvent, len(remoteEvents))
	for _, ev := range remoteEvents {
		if ev.CalendarID != calendarID || ev.IsDeleted() {
			continue
		}
		if _, ok := byID[ev.ID]; !ok {
			order = append(order, ev.ID)
		}
		byID[ev.ID] = ev
	}

	for _, op := range pending {
		switch op.Type {
		case model.SyncOpDeleteEvent:
			delete(byID, op.EntityID)
		case model.SyncOpUpsertEvent:
			if op.Event == nil {
				continue
			}
			if op.Event.CalendarID != calendarID || op.Event.IsDeleted() {
				delete(byID, op.EntityID)
				continue
			}
			if _, ok := byID[op.EntityID]; !ok {
				order = append(order, op.EntityID)
			}
			byID[op.EntityID] = *op.Event
		}
	}

	merged := make([]model.WeekendEvent, 0, len(byID))
	for _, id := range order {
		if ev, ok := byID[id]; ok {
			merged = append(merged, ev)
		}
	}
	return merged
}
