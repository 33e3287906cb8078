package app

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/chat"
	"github.com/zhubert/supportchat/internal/clipboard"
	"github.com/zhubert/supportchat/internal/notification"
	"github.com/zhubert/supportchat/internal/ui"
	"github.com/zhubert/supportchat/internal/ui/modals"
)

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	vc := ui.GetViewContext()
	vc.SetSidebarHidden(!vc.SidebarHidden())
	m.updateSizes()
	if vc.SidebarHidden() && m.focus == FocusDirectory {
		return m, m.setFocus(FocusChat)
	}
	return m, nil
}

func shortcutNewConversation(m *Model) (tea.Model, tea.Cmd) {
	return m.startNewConversation()
}

func shortcutRefresh(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Batch(m.ctrl.ReloadConversations(), m.checkHealth())
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	reply, ok := m.ctrl.State().LastReply()
	if !ok {
		return m, m.ShowFlashWarning("No reply to copy yet")
	}
	if err := clipboard.WriteText(reply); err != nil {
		m.log.Warn("copy failed", "error", err)
		return m, m.ShowFlashError("Clipboard unavailable")
	}
	return m, m.ShowFlashSuccess("Reply copied to clipboard")
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names := ui.ThemeNames()
	themes := make([]string, len(names))
	display := make([]string, len(names))
	for i, name := range names {
		themes[i] = string(name)
		display[i] = ui.GetTheme(name).Name
	}
	m.modal.Show(modals.NewSettingsState(
		themes, display, string(ui.CurrentThemeName()),
		m.config.GetAPIURL(),
		m.config.GetNotificationsEnabled(),
		m.config.ShouldConfirmDelete(),
	))
	return m, nil
}

func (m *Model) startNewConversation() (tea.Model, tea.Cmd) {
	m.ctrl.StartNewConversation()
	cmd := m.sync()
	return m, tea.Batch(cmd, m.setFocus(FocusChat))
}

func (m *Model) selectConversation(id api.SessionID) (tea.Model, tea.Cmd) {
	cmd := m.ctrl.SelectConversation(id)
	return m, tea.Batch(cmd, m.sync())
}

// requestDelete asks for confirmation first when the config says so.
func (m *Model) requestDelete(id api.SessionID) (tea.Model, tea.Cmd) {
	if m.ctrl.Busy() {
		return m, nil
	}
	if !m.config.ShouldConfirmDelete() {
		return m.deleteConversation(id)
	}

	st := m.ctrl.State()
	preview := ""
	if i := slices.IndexFunc(st.Conversations, func(c api.ConversationSummary) bool { return c.ID == id }); i >= 0 {
		preview = ui.Preview(st.Conversations[i])
	}
	m.modal.Show(modals.NewConfirmDeleteState(id, preview))
	return m, nil
}

func (m *Model) deleteConversation(id api.SessionID) (tea.Model, tea.Cmd) {
	cmd := m.ctrl.DeleteConversation(id)
	return m, tea.Batch(cmd, m.sync())
}

func (m *Model) sendMessage(text string) (tea.Model, tea.Cmd) {
	cmd := m.ctrl.SendMessage(text)
	return m, tea.Batch(cmd, m.sync())
}

// notifyReply raises a desktop notification when the reply lands while the
// terminal is unfocused.
func (m *Model) notifyReply(msg chat.ReplyMsg) tea.Cmd {
	if !m.config.GetNotificationsEnabled() || m.windowFocused {
		return nil
	}
	content := msg.Message.Content
	log := m.log
	return func() tea.Msg {
		if err := notification.ReplyReceived(content); err != nil {
			log.Warn("reply notification failed", "error", err)
		}
		return nil
	}
}
