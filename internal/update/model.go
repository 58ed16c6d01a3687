package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
	"github.com/MazharElstub/The-Weekend-sub002/internal/calendar"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

type View string

const (
	ViewPlanner   View = "Planner"
	ViewCountdown View = "Countdown"
	ViewNotices   View = "Notices"
	ViewReports   View = "Reports"
	ViewSync      View = "Sync"
)

// plannerHorizon is how many upcoming weekends the planner lists.
const plannerHorizon = 6

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Planner   string
	Countdown string
	Notices   string
	Reports   string
	Sync      string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// PlannerRow is one upcoming weekend with its merged events.
type PlannerRow struct {
	WeekendKey string
	Readiness  app.Readiness
	Events     []model.WeekendEvent
}

type PlannerState struct {
	Rows        []PlannerRow
	Cursor      int
	EventCursor int
	QuickAdd    bool
}

type NoticesState struct {
	Cursor int
}

type Model struct {
	App *app.AppState
	Loc *time.Location
	Now func() time.Time

	CurrentView View
	Planner     PlannerState
	NoticesView NoticesState
	Countdown   calendar.CountdownState
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	changes <-chan app.Change

	commandInput   textinput.Model
	quickAddInput  textinput.Model
	syncSpinner    spinner.Model
	syncTable      table.Model
	helpModel      help.Model
	noticeViewport viewport.Model
}

func NewModel(a *app.AppState, loc *time.Location) Model {
	if loc == nil {
		loc = time.UTC
	}

	commandInput := textinput.New()
	commandInput.Placeholder = "add saturday picnic | protect 2026-02-21 | retry"
	commandInput.CharLimit = 200

	quickAddInput := textinput.New()
	quickAddInput.Placeholder = "plan title"
	quickAddInput.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(54, 10)

	syncTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "entity", Width: 24},
			{Title: "op", Width: 14},
			{Title: "attempts", Width: 8},
			{Title: "state", Width: 10},
		}),
		table.WithHeight(10),
	)

	m := Model{
		App:            a,
		Loc:            loc,
		Now:            func() time.Time { return time.Now().In(loc) },
		CurrentView:    ViewPlanner,
		changes:        a.Subscribe(),
		commandInput:   commandInput,
		quickAddInput:  quickAddInput,
		syncSpinner:    sp,
		syncTable:      syncTable,
		helpModel:      help.New(),
		noticeViewport: vp,
		Keys: GlobalKeyMap{
			Planner:   "1",
			Countdown: "2",
			Notices:   "3",
			Reports:   "4",
			Sync:      "5",
			Help:      "?",
			Quit:      "q",
		},
	}
	m.refreshPlanner()
	m.refreshCountdown()
	return m
}

// refreshPlanner rebuilds the upcoming weekend rows from the merged
// orchestrator views.
func (m *Model) refreshPlanner() {
	now := m.Now()
	byKey := m.App.EventsByWeekendKey()

	key := m.App.NextUpcomingWeekendKey(now)
	rows := make([]PlannerRow, 0, plannerHorizon)
	for i := 0; i < plannerHorizon && key != ""; i++ {
		rows = append(rows, PlannerRow{
			WeekendKey: key,
			Readiness:  m.App.Readiness(key),
			Events:     byKey[key],
		})
		next, err := calendar.NextWeekendKey(key, m.Loc)
		if err != nil {
			break
		}
		key = next
	}
	m.Planner.Rows = rows

	if m.Planner.Cursor >= len(rows) {
		m.Planner.Cursor = 0
	}
	m.clampEventCursor()
}

func (m *Model) refreshCountdown() {
	m.Countdown = m.App.Countdown(m.Now())
}

func (m *Model) clampEventCursor() {
	events := m.selectedRowEvents()
	if m.Planner.EventCursor >= len(events) {
		m.Planner.EventCursor = 0
	}
}

func (m Model) selectedRow() (PlannerRow, bool) {
	if m.Planner.Cursor < 0 || m.Planner.Cursor >= len(m.Planner.Rows) {
		return PlannerRow{}, false
	}
	return m.Planner.Rows[m.Planner.Cursor], true
}

func (m Model) selectedRowEvents() []model.WeekendEvent {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	return row.Events
}

func (m Model) selectedEvent() (model.WeekendEvent, bool) {
	events := m.selectedRowEvents()
	if m.Planner.EventCursor < 0 || m.Planner.EventCursor >= len(events) {
		return model.WeekendEvent{}, false
	}
	return events[m.Planner.EventCursor], true
}

// selectedWeekendKey falls back to the next upcoming weekend when the
// planner has no rows yet.
func (m Model) selectedWeekendKey() string {
	if row, ok := m.selectedRow(); ok {
		return row.WeekendKey
	}
	return m.App.NextUpcomingWeekendKey(m.Now())
}

func (m Model) helpBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(m.Keys.Planner), key.WithHelp(m.Keys.Planner, "planner")),
		key.NewBinding(key.WithKeys(m.Keys.Countdown), key.WithHelp(m.Keys.Countdown, "countdown")),
		key.NewBinding(key.WithKeys(m.Keys.Notices), key.WithHelp(m.Keys.Notices, "notices")),
		key.NewBinding(key.WithKeys(m.Keys.Reports), key.WithHelp(m.Keys.Reports, "reports")),
		key.NewBinding(key.WithKeys(m.Keys.Sync), key.WithHelp(m.Keys.Sync, "sync")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add plan")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "protect")),
		key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sync now")),
		key.NewBinding(key.WithKeys(m.Keys.Quit), key.WithHelp(m.Keys.Quit, "quit")),
	}
}
