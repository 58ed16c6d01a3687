package notify

import "strings"

// PayloadKind classifies an incoming push payload by its "type" field.
type PayloadKind string

const (
	PayloadPlanningNudge PayloadKind = "planning-nudge"
	PayloadSummary       PayloadKind = "summary"
	PayloadEvent         PayloadKind = "event"
)

// ActionID is an explicit action button on a notification. Empty means the
// user tapped the notification body.
type ActionID string

const (
	ActionAdd    ActionID = "add"
	ActionOpen   ActionID = "open"
	ActionSnooze ActionID = "snooze"
)

// RouteKind is where a tap navigates.
type RouteKind string

const (
	// RouteAddPlan opens the add-plan flow for a weekend key.
	RouteAddPlan RouteKind = "add-plan"
	// RouteOpenWeekend opens the planner focused on a weekend key.
	RouteOpenWeekend RouteKind = "open-weekend"
	// RouteOpenPlanner opens the planner with a message and no focus, used
	// when an open-weekend tap carried no key.
	RouteOpenPlanner RouteKind = "open-planner"
	// RouteNone performs no navigation (snooze).
	RouteNone RouteKind = "none"
)

// Fallback reasons recorded on decisions for payloads missing a weekend key.
const (
	FallbackUsedNextUpcoming = "missing-weekend-key-used-next-upcoming"
	FallbackOpenedPlanner    = "missing-weekend-key-opened-planner"
)

// TapPayload is the relevant subset of a push notification payload.
type TapPayload struct {
	Kind       PayloadKind
	WeekendKey string
	EventID    string
	Message    string
}

// TapDecision is the resolved navigation outcome for one tap.
type TapDecision struct {
	RequestID      string
	Route          RouteKind
	WeekendKey     string
	EventID        string
	Message        string
	FallbackReason string
}

// ResolveTapDecision classifies a notification tap into a navigation route.
// Explicit action ids override the payload's default destination: add always
// routes to add-plan, open always routes to open-weekend, snooze routes
// nowhere. A plain tap routes planning nudges to add-plan and everything else
// to open-weekend. When the payload lacks a weekend key, add-plan falls back
// to the next upcoming key from the provider and open-weekend degrades to
// opening the planner with the payload's message; both record a fallback
// reason.
func ResolveTapDecision(requestID string, payload TapPayload, actionID ActionID, nextUpcomingKey func() string) TapDecision {
	decision := TapDecision{
		RequestID:  requestID,
		WeekendKey: strings.TrimSpace(payload.WeekendKey),
		EventID:    payload.EventID,
	}

	if actionID == ActionSnooze {
		decision.Route = RouteNone
		decision.WeekendKey = ""
		decision.EventID = ""
		return decision
	}

	switch {
	case actionID == ActionAdd:
		decision.Route = RouteAddPlan
	case actionID == ActionOpen:
		decision.Route = RouteOpenWeekend
	case payload.Kind == PayloadPlanningNudge:
		decision.Route = RouteAddPlan
	default:
		decision.Route = RouteOpenWeekend
	}

	if decision.WeekendKey != "" {
		return decision
	}

	switch decision.Route {
	case RouteAddPlan:
		if nextUpcomingKey != nil {
			decision.WeekendKey = nextUpcomingKey()
		}
		decision.FallbackReason = FallbackUsedNextUpcoming
	case RouteOpenWeekend:
		decision.Route = RouteOpenPlanner
		decision.Message = payload.Message
		decision.FallbackReason = FallbackOpenedPlanner
	}
	return decision
}
