package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MazharElstub/The-Weekend-sub002/internal/views"
)

const markReadTimeout = 5 * time.Second

func (m Model) handleNoticesKey(msg tea.KeyMsg) Model {
	notices := m.App.Notices()
	switch msg.String() {
	case "down", "j":
		if m.NoticesView.Cursor < len(notices)-1 {
			m.NoticesView.Cursor++
			m.syncNoticeViewport()
		}
	case "up", "k":
		if m.NoticesView.Cursor > 0 {
			m.NoticesView.Cursor--
			m.syncNoticeViewport()
		}
	case "enter":
		if m.NoticesView.Cursor >= len(notices) {
			return m
		}
		n := notices[m.NoticesView.Cursor]
		if n.IsRead() {
			return m
		}
		ctx, cancel := context.WithTimeout(context.Background(), markReadTimeout)
		defer cancel()
		if err := m.App.MarkNoticeRead(ctx, n.ID, m.Now()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: "notice read: " + n.Title}
	}
	return m
}

// syncNoticeViewport renders the selected notice body into the detail pane.
func (m *Model) syncNoticeViewport() {
	notices := m.App.Notices()
	if m.NoticesView.Cursor >= len(notices) {
		m.NoticesView.Cursor = 0
	}
	if len(notices) == 0 {
		m.noticeViewport.SetContent("no notices")
		return
	}
	n := notices[m.NoticesView.Cursor]
	body := views.RenderMarkdown(n.Body)
	if body == "" {
		body = n.Title
	}
	m.noticeViewport.SetContent(body)
	m.noticeViewport.GotoTop()
}
