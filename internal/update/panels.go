package update

import (
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/MazharElstub/The-Weekend-sub002/internal/views"
)

func (m Model) renderPlannerPanel() string {
	now := m.Now()
	rows := make([]views.PlannerRowData, 0, len(m.Planner.Rows))
	for i, row := range m.Planner.Rows {
		data := views.PlannerRowData{
			WeekendKey: row.WeekendKey,
			Readiness:  string(row.Readiness),
			Selected:   i == m.Planner.Cursor,
		}
		for j, ev := range row.Events {
			data.Events = append(data.Events, views.PlannerEventData{
				ID:        ev.ID,
				Title:     ev.Title,
				Kind:      string(ev.Type),
				Status:    string(ev.Status),
				SyncState: string(m.App.SyncState(ev.ID, now)),
				Selected:  data.Selected && j == m.Planner.EventCursor,
			})
		}
		rows = append(rows, data)
	}
	return views.RenderPlannerPanel(views.PlannerPanelData{
		Rows:           rows,
		QuickAddActive: m.Planner.QuickAdd,
		QuickAddView:   m.quickAddInput.View(),
	})
}

func (m Model) renderPlannerSidePanel() string {
	leaves := m.App.LeaveDates()
	dates := make([]string, 0, len(leaves))
	for d := range leaves {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return views.RenderOverlayPanel(views.OverlayPanelData{
		LeaveDates:      dates,
		SelectedWeekend: m.selectedWeekendKey(),
		Readiness:       string(m.App.Readiness(m.selectedWeekendKey())),
	})
}

func (m Model) renderCountdownPanel() string {
	return views.RenderCountdownPanel(views.CountdownPanelData{
		Phase:         string(m.Countdown.Phase),
		WeekendKey:    m.Countdown.WeekendKey,
		CenterLabel:   m.Countdown.CenterLabel,
		StartDayLabel: m.Countdown.StartDayLabel,
		OffDayMode:    m.Countdown.IsOffDayMode(),
	})
}

func (m Model) renderNoticesPanel() string {
	notices := m.App.Notices()
	rows := make([]views.NoticeRowData, 0, len(notices))
	for i, n := range notices {
		rows = append(rows, views.NoticeRowData{
			Title:     n.Title,
			CreatedAt: n.CreatedAt.In(m.Loc).Format("2006-01-02"),
			Read:      n.IsRead(),
			Selected:  i == m.NoticesView.Cursor,
		})
	}
	return views.RenderNoticesPanel(rows)
}

func (m Model) renderSyncPanel() string {
	now := m.Now()
	ops := m.App.PendingOperations()
	rows := make([]table.Row, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, table.Row{
			op.EntityID,
			string(op.Type),
			strconv.Itoa(op.Attempts),
			string(m.App.SyncState(op.EntityID, now)),
		})
	}
	m.syncTable.SetRows(rows)
	if len(ops) == 0 {
		return views.RenderSyncPanel("everything is synced")
	}
	return views.RenderSyncPanel(m.syncTable.View())
}

func (m Model) renderReportsPanel() string {
	summaries := m.App.WeeklyReport()
	rows := make([]views.ReportRowData, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, views.ReportRowData{
			WeekendKey: s.WeekendKey,
			Planned:    s.Planned,
			Completed:  s.Completed,
			Cancelled:  s.Cancelled,
		})
	}
	data := views.ReportsPanelData{
		Rows:   rows,
		Streak: m.App.CurrentStreak(m.Now()),
	}
	month := m.Now().Format("2006-01")
	if progress, ok := m.App.GoalProgress(month); ok {
		data.Goal = &views.GoalProgressData{
			Month:           progress.Month,
			PlannedCount:    progress.PlannedCount,
			PlannedTarget:   progress.PlannedTarget,
			CompletedCount:  progress.CompletedCount,
			CompletedTarget: progress.CompletedTarget,
			PlannedMet:      progress.PlannedMet(),
			CompletedMet:    progress.CompletedMet(),
		}
	}
	return views.RenderReportsPanel(data)
}
