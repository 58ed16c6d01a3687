package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func nextKey() string { return "2026-02-21" }

func TestPlainTapOnPlanningNudgeRoutesToAddPlan(t *testing.T) {
	d := ResolveTapDecision("req-1", TapPayload{Kind: PayloadPlanningNudge, WeekendKey: "2026-02-14"}, "", nextKey)

	require.Equal(t, RouteAddPlan, d.Route)
	require.Equal(t, "2026-02-14", d.WeekendKey)
	require.Empty(t, d.FallbackReason)
}

func TestPlainTapOnSummaryAndEventRoutesToOpenWeekend(t *testing.T) {
	for _, kind := range []PayloadKind{PayloadSummary, PayloadEvent} {
		d := ResolveTapDecision("req-1", TapPayload{Kind: kind, WeekendKey: "2026-02-14"}, "", nextKey)
		require.Equal(t, RouteOpenWeekend, d.Route, "kind %s", kind)
		require.Equal(t, "2026-02-14", d.WeekendKey)
	}
}

func TestExplicitActionsOverrideDefaultDestination(t *testing.T) {
	summary := TapPayload{Kind: PayloadSummary, WeekendKey: "2026-02-14"}
	nudge := TapPayload{Kind: PayloadPlanningNudge, WeekendKey: "2026-02-14"}

	require.Equal(t, RouteAddPlan, ResolveTapDecision("r", summary, ActionAdd, nextKey).Route)
	require.Equal(t, RouteOpenWeekend, ResolveTapDecision("r", nudge, ActionOpen, nextKey).Route)
}

func TestSnoozeNavigatesNowhere(t *testing.T) {
	d := ResolveTapDecision("r", TapPayload{Kind: PayloadPlanningNudge, WeekendKey: "2026-02-14"}, ActionSnooze, nextKey)

	require.Equal(t, RouteNone, d.Route)
	require.Empty(t, d.WeekendKey)
}

func TestAddPlanFallsBackToNextUpcomingKey(t *testing.T) {
	d := ResolveTapDecision("r", TapPayload{Kind: PayloadPlanningNudge}, "", nextKey)

	require.Equal(t, RouteAddPlan, d.Route)
	require.Equal(t, "2026-02-21", d.WeekendKey)
	require.Equal(t, FallbackUsedNextUpcoming, d.FallbackReason)
}

func TestOpenWeekendWithoutKeyDegradesToPlanner(t *testing.T) {
	d := ResolveTapDecision("r", TapPayload{Kind: PayloadSummary, Message: "Your week in review"}, "", nextKey)

	require.Equal(t, RouteOpenPlanner, d.Route)
	require.Empty(t, d.WeekendKey)
	require.Equal(t, "Your week in review", d.Message)
	require.Equal(t, FallbackOpenedPlanner, d.FallbackReason)
}

func TestEventPayloadCarriesEventID(t *testing.T) {
	d := ResolveTapDecision("r", TapPayload{Kind: PayloadEvent, WeekendKey: "2026-02-14", EventID: "e1"}, "", nextKey)

	require.Equal(t, RouteOpenWeekend, d.Route)
	require.Equal(t, "e1", d.EventID)
}
