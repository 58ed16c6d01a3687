package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/MazharElstub/The-Weekend-sub002/internal/calendar"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// Export renders planned events as a VCALENDAR, one VEVENT per expanded day
// interval. Deleted events, ideas, and cancelled plans are skipped.
func Export(events []model.WeekendEvent, loc *time.Location, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//The Weekend//Planner//EN")

	for _, ev := range events {
		if ev.IsDeleted() || ev.Type != model.EventTypePlan || ev.Status == model.EventStatusCancelled {
			continue
		}
		intervals, err := calendar.Intervals(ev, loc)
		if err != nil {
			return "", fmt.Errorf("ics: expand %s: %w", ev.ID, err)
		}
		for _, iv := range intervals {
			ve := cal.AddEvent(fmt.Sprintf("%s-%s@theweekend", ev.ID, strings.ToLower(string(iv.Day))))
			ve.SetDtStampTime(now.UTC())
			ve.SetStartAt(iv.Start)
			ve.SetEndAt(iv.End)
			ve.SetSummary(ev.Title)
			if ev.Status == model.EventStatusCompleted {
				ve.SetStatus(ical.ObjectStatusCompleted)
			} else {
				ve.SetStatus(ical.ObjectStatusConfirmed)
			}
		}
	}
	return cal.Serialize(), nil
}
