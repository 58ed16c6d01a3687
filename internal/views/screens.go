package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type PlannerEventData struct {
	ID        string
	Title     string
	Kind      string
	Status    string
	SyncState string
	Selected  bool
}

type PlannerRowData struct {
	WeekendKey string
	Readiness  string
	Selected   bool
	Events     []PlannerEventData
}

type PlannerPanelData struct {
	Rows           []PlannerRowData
	QuickAddActive bool
	QuickAddView   string
}

type OverlayPanelData struct {
	LeaveDates      []string
	SelectedWeekend string
	Readiness       string
}

type CountdownPanelData struct {
	Phase         string
	WeekendKey    string
	CenterLabel   string
	StartDayLabel string
	OffDayMode    bool
}

type NoticeRowData struct {
	Title     string
	CreatedAt string
	Read      bool
	Selected  bool
}

type ReportRowData struct {
	WeekendKey string
	Planned    int
	Completed  int
	Cancelled  int
}

type GoalProgressData struct {
	Month           string
	PlannedCount    int
	PlannedTarget   int
	CompletedCount  int
	CompletedTarget int
	PlannedMet      bool
	CompletedMet    bool
}

type ReportsPanelData struct {
	Rows   []ReportRowData
	Streak int
	Goal   *GoalProgressData
}

var (
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	readyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	protectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	unplannedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	countdownStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4).Border(lipgloss.DoubleBorder())
	burstStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

func readinessBadge(readiness string) string {
	switch readiness {
	case "protected":
		return protectedStyle.Render("[protected]")
	case "ready":
		return readyStyle.Render("[ready]")
	case "partiallyPlanned":
		return unplannedStyle.Render("[partial]")
	default:
		return dimStyle.Render("[unplanned]")
	}
}

func RenderPlannerPanel(data PlannerPanelData) string {
	var b strings.Builder
	for _, row := range data.Rows {
		marker := "  "
		key := row.WeekendKey
		if row.Selected {
			marker = "> "
			key = selectedStyle.Render(key)
		}
		fmt.Fprintf(&b, "%s%s %s\n", marker, key, readinessBadge(row.Readiness))
		for _, ev := range row.Events {
			line := fmt.Sprintf("    %s (%s, %s, %s)", ev.Title, ev.Kind, ev.Status, ev.SyncState)
			if ev.Selected {
				line = selectedStyle.Render(line)
			} else if ev.Status == "cancelled" {
				line = dimStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("no upcoming weekends") + "\n")
	}
	if data.QuickAddActive {
		b.WriteString("\nadd plan: " + data.QuickAddView + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderOverlayPanel(data OverlayPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "weekend %s %s\n", data.SelectedWeekend, readinessBadge(data.Readiness))
	if len(data.LeaveDates) == 0 {
		b.WriteString(dimStyle.Render("no annual leave booked"))
		return b.String()
	}
	b.WriteString("annual leave:\n")
	for _, d := range data.LeaveDates {
		b.WriteString("  " + d + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCountdownPanel(data CountdownPanelData) string {
	center := countdownStyle.Render(data.CenterLabel)
	var caption string
	switch {
	case data.Phase == "weekendBurst":
		caption = burstStyle.Render("the weekend is here")
	case data.OffDayMode:
		caption = readyStyle.Render("enjoy your weekend")
	default:
		caption = fmt.Sprintf("until %s (%s)", data.StartDayLabel, data.WeekendKey)
	}
	return lipgloss.JoinVertical(lipgloss.Center, center, caption)
}

func RenderNoticesPanel(rows []NoticeRowData) string {
	if len(rows) == 0 {
		return dimStyle.Render("no notices")
	}
	var b strings.Builder
	for _, n := range rows {
		marker := "  "
		if n.Selected {
			marker = "> "
		}
		badge := dimStyle.Render("read")
		if !n.Read {
			badge = unplannedStyle.Render("unread")
		}
		line := fmt.Sprintf("%s%s  %s  %s", marker, n.CreatedAt, n.Title, badge)
		if n.Selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderReportsPanel(data ReportsPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "planned weekend streak: %d\n\n", data.Streak)
	if data.Goal != nil {
		fmt.Fprintf(&b, "goal %s: planned %d/%d%s, completed %d/%d%s\n\n",
			data.Goal.Month,
			data.Goal.PlannedCount, data.Goal.PlannedTarget, metMark(data.Goal.PlannedMet),
			data.Goal.CompletedCount, data.Goal.CompletedTarget, metMark(data.Goal.CompletedMet))
	}
	if len(data.Rows) == 0 {
		b.WriteString(dimStyle.Render("no planned weekends yet"))
		return b.String()
	}
	fmt.Fprintf(&b, "%-12s %8s %10s %10s\n", "weekend", "planned", "completed", "cancelled")
	for _, r := range data.Rows {
		fmt.Fprintf(&b, "%-12s %8d %10d %10d\n", r.WeekendKey, r.Planned, r.Completed, r.Cancelled)
	}
	return strings.TrimRight(b.String(), "\n")
}

func metMark(met bool) string {
	if met {
		return " " + readyStyle.Render("met")
	}
	return ""
}

func RenderCommandPalette(inputView string) string {
	return "command: " + inputView
}

func RenderSyncPanel(tableView string) string {
	return "pending sync operations\n\n" + tableView + "\n\n" + dimStyle.Render("S forces an immediate retry")
}
