package app

import (
	"sync"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/cache"
	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
	"github.com/MazharElstub/The-Weekend-sub002/internal/remote"
	"github.com/MazharElstub/The-Weekend-sub002/internal/share"
	"github.com/MazharElstub/The-Weekend-sub002/internal/syncer"
)

// Cache document names owned by the orchestrator.
const (
	docEvents        = "events"
	docCalendars     = "calendars"
	docNotices       = "notices"
	docGoals         = "goals"
	docLeaveDays     = "leave_days"
	docReminders     = "reminders"
	docProtections   = "protections"
	docConfiguration = "configuration"
	docSelection     = "selected_calendar"
)

// Change names a slice of state that observers may need to re-read.
type Change string

const (
	ChangeEvents        Change = "events"
	ChangeCalendars     Change = "calendars"
	ChangeNotices       Change = "notices"
	ChangeGoals         Change = "goals"
	ChangeOverlays      Change = "overlays"
	ChangeConfiguration Change = "configuration"
	ChangeSession       Change = "session"
	ChangePrefill       Change = "prefill"
)

// Route is the top-level presentation state.
type Route string

const (
	RouteWelcome    Route = "welcome"
	RouteOnboarding Route = "onboarding"
	RoutePlanner    Route = "planner"
)

// AddPlanPrefill is a staged add-plan form, produced by consuming a shared
// payload.
type AddPlanPrefill struct {
	Title      string
	Details    string
	WeekendKey string
}

// AppState is the single owner of all in-memory session collections. Every
// mutation goes through its command methods; durable snapshots go through
// the coordinator; remote mutations go through the pending queue.
type AppState struct {
	mu sync.Mutex

	loc    *time.Location
	store  *cache.Store
	coord  *cache.Coordinator
	queue  *syncer.Queue
	engine *syncer.Engine
	remote remote.Service
	inbox  *share.Inbox

	signedIn bool
	userID   string

	configuration *model.WeekendConfiguration
	events        []model.WeekendEvent
	calendars     []model.PlannerCalendar
	notices       []model.UserNotice
	goals         map[string]model.MonthlyGoal
	leaveDays     map[string]model.AnnualLeaveDay
	reminders     []model.PersonalReminder
	protections   map[string]model.WeekendProtection

	selectedCalendarID string
	stagedPrefill      *AddPlanPrefill
	statusMessage      string

	subscribers []chan Change
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Location *time.Location
	Store    *cache.Store
	Coord    *cache.Coordinator
	Queue    *syncer.Queue
	Engine   *syncer.Engine
	Remote   remote.Service
	Inbox    *share.Inbox
}

// New restores an AppState from the cache store. Missing or malformed
// documents load as empty collections.
func New(opts Options) *AppState {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	a := &AppState{
		loc:         loc,
		store:       opts.Store,
		coord:       opts.Coord,
		queue:       opts.Queue,
		engine:      opts.Engine,
		remote:      opts.Remote,
		inbox:       opts.Inbox,
		goals:       make(map[string]model.MonthlyGoal),
		leaveDays:   make(map[string]model.AnnualLeaveDay),
		protections: make(map[string]model.WeekendProtection),
	}
	a.restore()
	return a
}

func (a *AppState) restore() {
	a.store.Load(docEvents, &a.events)
	a.store.Load(docCalendars, &a.calendars)
	a.store.Load(docNotices, &a.notices)
	a.store.Load(docGoals, &a.goals)
	a.store.Load(docLeaveDays, &a.leaveDays)
	a.store.Load(docReminders, &a.reminders)
	a.store.Load(docProtections, &a.protections)
	a.store.Load(docSelection, &a.selectedCalendarID)

	var cfg model.WeekendConfiguration
	if a.store.Load(docConfiguration, &cfg) && cfg.Validate() == nil {
		a.configuration = &cfg
	}
	if a.goals == nil {
		a.goals = make(map[string]model.MonthlyGoal)
	}
	if a.leaveDays == nil {
		a.leaveDays = make(map[string]model.AnnualLeaveDay)
	}
	if a.protections == nil {
		a.protections = make(map[string]model.WeekendProtection)
	}
}

// Subscribe returns a channel of change notifications. Delivery is
// non-blocking: a subscriber that falls behind misses intermediate
// notifications but never stalls the orchestrator.
func (a *AppState) Subscribe() <-chan Change {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch := make(chan Change, 16)
	a.subscribers = append(a.subscribers, ch)
	return ch
}

func (a *AppState) notifyLocked(change Change) {
	for _, ch := range a.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

// SignIn marks the session authenticated and replays any share payload ids
// remembered while signed out. Each replayed payload is consumed exactly
// once; the most recent one wins as the staged prefill.
func (a *AppState) SignIn(userID string) {
	a.mu.Lock()
	a.signedIn = true
	a.userID = userID
	a.notifyLocked(ChangeSession)
	a.mu.Unlock()

	a.replayRememberedShares()
}

// SignOut clears the authenticated session flag. Collections stay cached for
// the next sign-in by the same user.
func (a *AppState) SignOut() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signedIn = false
	a.userID = ""
	a.notifyLocked(ChangeSession)
}

func (a *AppState) IsSignedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signedIn
}

// Route derives the top-level destination: welcome when signed out,
// onboarding when signed in without a weekend configuration, the planner
// otherwise.
func (a *AppState) Route() Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.signedIn {
		return RouteWelcome
	}
	if a.configuration == nil {
		return RouteOnboarding
	}
	return RoutePlanner
}

// StatusMessage is the last user-facing message set by an orchestrated
// operation (account deletion outcome, forced retry, ...).
func (a *AppState) StatusMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.statusMessage
}

func (a *AppState) saveCollectionLocked(name string, v any) {
	if err := a.coord.ScheduleSave(name, v); err != nil {
		log.Error("app: schedule save", err, "doc", name)
	}
}
