package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
	"github.com/MazharElstub/The-Weekend-sub002/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChangeCmd(m.changes),
		countdownTickCmd(),
		m.syncSpinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.Planner.QuickAdd {
			return m.handleQuickAddKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Planner:
			m.CurrentView = ViewPlanner
			m.refreshPlanner()
			return m, nil
		case m.Keys.Countdown:
			m.CurrentView = ViewCountdown
			m.refreshCountdown()
			return m, nil
		case m.Keys.Notices:
			m.CurrentView = ViewNotices
			m.syncNoticeViewport()
			return m, nil
		case m.Keys.Reports:
			m.CurrentView = ViewReports
			return m, nil
		case m.Keys.Sync:
			m.CurrentView = ViewSync
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "S":
			if err := m.App.ForceRetrySync("keyboard"); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			} else {
				m.Status = StatusBar{Text: "sync retry requested"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewPlanner:
			return m.handlePlannerKey(typed), nil
		case ViewNotices:
			return m.handleNoticesKey(typed), nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.syncSpinner, cmd = m.syncSpinner.Update(typed)
		return m, cmd

	case CountdownTickMsg:
		m.refreshCountdown()
		return m, countdownTickCmd()

	case ChangeMsg:
		m = m.applyChange(typed.Change)
		return m, waitForChangeCmd(m.changes)

	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) applyChange(change app.Change) Model {
	switch change {
	case app.ChangeEvents, app.ChangeOverlays, app.ChangeConfiguration, app.ChangeSession:
		m.refreshPlanner()
		m.refreshCountdown()
	case app.ChangeNotices:
		m.syncNoticeViewport()
	case app.ChangePrefill:
		if prefill, ok := m.App.StagedPrefill(); ok {
			m.CurrentView = ViewPlanner
			m.refreshPlanner()
			m.moveCursorToWeekend(prefill.WeekendKey)
			m.Planner.QuickAdd = true
			m.quickAddInput.SetValue(prefill.Title)
			m.quickAddInput.Focus()
			m.Status = StatusBar{Text: "shared plan staged: " + prefill.Title}
		}
	}
	return m
}

func (m Model) View() string {
	status := m.Status.Text
	if m.Status.IsError {
		status = "error: " + m.Status.Text
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewPlanner:
		leftPane = m.renderPlannerPanel()
		rightPane = m.renderPlannerSidePanel()
	case ViewCountdown:
		leftPane = m.renderCountdownPanel()
	case ViewNotices:
		leftPane = m.renderNoticesPanel()
		rightPane = m.noticeViewport.View()
	case ViewReports:
		leftPane = m.renderReportsPanel()
	case ViewSync:
		leftPane = m.renderSyncPanel()
	}
	if m.Palette.Active {
		rightPane = views.RenderCommandPalette(m.commandInput.View()) + "\n" + rightPane
	}
	if m.HelpVisible {
		rightPane += "\n" + m.helpModel.ShortHelpView(m.helpBindings())
	}

	notification := ""
	if pending := m.App.PendingOperationCount(); pending > 0 {
		notification = fmt.Sprintf("%s syncing, %d pending", m.syncSpinner.View(), pending)
	}
	if unread := m.App.UnreadNoticeCount(); unread > 0 {
		if notification != "" {
			notification += " | "
		}
		notification += fmt.Sprintf("%d unread notice(s)", unread)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("the weekend | view: %s | weekend: %s", m.CurrentView, m.selectedWeekendKey()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s planner | %s countdown | %s notices | %s reports | %s sync | / cmd | S retry | %s help | %s quit",
			m.Keys.Planner, m.Keys.Countdown, m.Keys.Notices, m.Keys.Reports, m.Keys.Sync, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewPlanner, ViewCountdown, ViewNotices, ViewReports, ViewSync:
		return true
	default:
		return false
	}
}
