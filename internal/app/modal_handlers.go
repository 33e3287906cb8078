package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/keys"
	"github.com/zhubert/supportchat/internal/ui"
	"github.com/zhubert/supportchat/internal/ui/modals"
)

// handleModalKey routes modal key events to the handler for the visible
// dialog. Enter and Escape are decided here; other keys reach the dialog.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	return m.forwardToModal(msg)
}

func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmDeleteModal handles key events for the Confirm Delete modal.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		return m.deleteConversation(state.ID)
	}
	return m.forwardToModal(msg)
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m.saveSettings(state)
	}
	return m.forwardToModal(msg)
}

func (m *Model) saveSettings(state *modals.SettingsState) (tea.Model, tea.Cmd) {
	if err := state.Validate(); err != nil {
		m.modal.SetError("Enter an http or https URL")
		return m, nil
	}
	if state.APIURLChanged() && m.ctrl.Busy() {
		m.modal.SetError("Wait for the current request to finish")
		return m, nil
	}

	var cmds []tea.Cmd
	if state.ThemeChanged() {
		ui.SetThemeByName(state.GetSelectedTheme())
		m.config.SetTheme(state.GetSelectedTheme())
	}
	m.config.SetNotificationsEnabled(state.NotificationsEnabled)
	m.config.SetConfirmDelete(state.ConfirmDelete)
	if state.APIURLChanged() {
		m.config.SetAPIURL(state.GetAPIURL())
		m.client = newClient(m.config)
		m.log.Info("service URL changed", "apiURL", m.client.BaseURL())
		cmds = append(cmds, m.ctrl.SwitchService(m.client), m.checkHealth())
	}

	if err := m.config.Save(); err != nil {
		m.log.Error("failed to save settings", "error", err)
		m.modal.SetError("Failed to save: " + err.Error())
		return m, tea.Batch(cmds...)
	}
	m.modal.Hide()
	cmds = append(cmds, m.sync(), m.ShowFlashSuccess("Settings saved"))
	return m, tea.Batch(cmds...)
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.SelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		target := shortcutForDisplayKey(shortcut.Key)
		if target == "" {
			return m, nil
		}
		m.modal.Hide()
		return m, func() tea.Msg { return helpShortcutTriggeredMsg{Key: target} }
	}
	return m.forwardToModal(msg)
}
