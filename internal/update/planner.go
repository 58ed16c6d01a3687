package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func (m Model) handlePlannerKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "down", "j":
		if m.Planner.Cursor < len(m.Planner.Rows)-1 {
			m.Planner.Cursor++
			m.Planner.EventCursor = 0
		}
	case "up", "k":
		if m.Planner.Cursor > 0 {
			m.Planner.Cursor--
			m.Planner.EventCursor = 0
		}
	case "tab":
		if events := m.selectedRowEvents(); len(events) > 0 {
			m.Planner.EventCursor = (m.Planner.EventCursor + 1) % len(events)
		}
	case "a":
		m.Planner.QuickAdd = true
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "add plan for " + m.selectedWeekendKey()}
	case "c":
		m = m.transitionSelected("completed", m.App.CompleteEvent)
	case "x":
		m = m.transitionSelected("cancelled", m.App.CancelEvent)
	case "r":
		m = m.transitionSelected("reopened", m.App.ReopenEvent)
	case "d":
		m = m.transitionSelected("deleted", m.App.DeleteEvent)
	case "P":
		m = m.toggleProtection()
	}
	return m
}

func (m Model) transitionSelected(verb string, apply func(string, time.Time) error) Model {
	ev, ok := m.selectedEvent()
	if !ok {
		m.Status = StatusBar{Text: "no event selected", IsError: true}
		return m
	}
	if err := apply(ev.ID, m.Now()); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: verb + ": " + ev.Title}
	m.refreshPlanner()
	return m
}

func (m Model) toggleProtection() Model {
	key := m.selectedWeekendKey()
	on := m.App.Readiness(key) != app.ReadinessProtected
	if err := m.App.SetProtection(key, on, m.Now()); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if on {
		m.Status = StatusBar{Text: "protected " + key}
	} else {
		m.Status = StatusBar{Text: "unprotected " + key}
	}
	m.refreshPlanner()
	return m
}

func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Planner.QuickAdd = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
	case "enter":
		title := strings.TrimSpace(m.quickAddInput.Value())
		if title == "" {
			return m
		}
		if err := m.addPlan(title, model.EventTypePlan, m.selectedWeekendKey()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Planner.QuickAdd = false
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "added: " + title}
		m.refreshPlanner()
	default:
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
	}
	return m
}

// addPlan queues a new event for the given weekend. Plan events default to
// the configured weekend days; ideas stay day-less until scheduled.
func (m Model) addPlan(title string, kind model.EventType, weekendKey string) error {
	ev := model.WeekendEvent{
		Title:      title,
		Type:       kind,
		WeekendKey: weekendKey,
	}
	if kind == model.EventTypePlan {
		cfg, ok := m.App.Configuration()
		if !ok {
			cfg = model.DefaultWeekendConfiguration()
		}
		ev.Days = cfg.WeekendDays
	}
	return m.App.AddEvent(ev, m.Now())
}

func (m *Model) moveCursorToWeekend(key string) {
	for i, row := range m.Planner.Rows {
		if row.WeekendKey == key {
			m.Planner.Cursor = i
			m.Planner.EventCursor = 0
			return
		}
	}
}
