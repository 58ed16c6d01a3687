package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MazharElstub/The-Weekend-sub002/internal/commands"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		return m
	}

	res, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.refreshPlanner()
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

// paletteHandlers binds the palette verbs to orchestrator commands. Handlers
// run synchronously inside the update loop; only goal setting talks to the
// remote service directly and gets a bounded context.
func (m *Model) paletteHandlers() commands.Handlers {
	now := m.Now()
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if err := m.addPlan(a.Title, model.EventTypePlan, m.selectedWeekendKey()); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "added plan: " + a.Title}, nil
		},
		Idea: func(a commands.AddArgs) (commands.Result, error) {
			if err := m.addPlan(a.Title, model.EventTypeIdea, m.selectedWeekendKey()); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "added idea: " + a.Title}, nil
		},
		Complete: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.App.CompleteEvent(t.ID, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "completed " + t.ID}, nil
		},
		Cancel: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.App.CancelEvent(t.ID, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "cancelled " + t.ID}, nil
		},
		Reopen: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.App.ReopenEvent(t.ID, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "reopened " + t.ID}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			if err := m.App.DeleteEvent(t.ID, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "deleted " + t.ID}, nil
		},
		Protect: func(w commands.WeekendArgs) (commands.Result, error) {
			if err := m.App.SetProtection(w.WeekendKey, true, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "protected " + w.WeekendKey}, nil
		},
		Unprotect: func(w commands.WeekendArgs) (commands.Result, error) {
			if err := m.App.SetProtection(w.WeekendKey, false, now); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "unprotected " + w.WeekendKey}, nil
		},
		Leave: func(l commands.LeaveArgs) (commands.Result, error) {
			if err := m.App.AddLeaveDay(l.Date, l.Note); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "leave day added: " + l.Date}, nil
		},
		Unleave: func(l commands.LeaveArgs) (commands.Result, error) {
			m.App.RemoveLeaveDay(l.Date)
			return commands.Result{Message: "leave day removed: " + l.Date}, nil
		},
		Goal: func(g commands.GoalArgs) (commands.Result, error) {
			ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
			defer cancel()
			goal := model.MonthlyGoal{
				Month:           g.Month,
				PlannedTarget:   g.PlannedTarget,
				CompletedTarget: g.CompletedTarget,
			}
			if err := m.App.SetMonthlyGoal(ctx, goal); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("goal for %s: plan %d, complete %d", g.Month, g.PlannedTarget, g.CompletedTarget)}, nil
		},
		Retry: func() (commands.Result, error) {
			if err := m.App.ForceRetrySync("palette"); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "sync retry requested"}, nil
		},
		Open: func(w commands.WeekendArgs) (commands.Result, error) {
			m.CurrentView = ViewPlanner
			m.refreshPlanner()
			m.moveCursorToWeekend(w.WeekendKey)
			return commands.Result{Message: "opened " + w.WeekendKey}, nil
		},
	}
}
