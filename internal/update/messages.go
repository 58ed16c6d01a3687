package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MazharElstub/The-Weekend-sub002/internal/app"
)

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ChangeMsg carries one orchestrator change notification into the
// update loop.
type ChangeMsg struct {
	Change app.Change
}

type CountdownTickMsg struct {
	At time.Time
}

func waitForChangeCmd(ch <-chan app.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return ChangeMsg{Change: change}
	}
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return CountdownTickMsg{At: t}
	})
}
