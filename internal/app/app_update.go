package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/chat"
	"github.com/zhubert/supportchat/internal/keys"
	"github.com/zhubert/supportchat/internal/ui"
)

// helpShortcutTriggeredMsg runs a shortcut chosen in the help modal.
type helpShortcutTriggeredMsg struct {
	Key string
}

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		m.log.Debug("window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		m.log.Debug("window blurred")
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled globally, let it fall through to the focused panel

	case chat.SendResultMsg, chat.SelectResultMsg, chat.DeleteResultMsg, chat.DirectoryMsg:
		cmd := m.ctrl.Update(msg)
		return m, tea.Batch(cmd, m.sync())

	case chat.ReplyMsg:
		return m, m.notifyReply(msg)

	case HealthMsg:
		return m.handleHealthMsg(msg)

	case ui.SubmitMsg:
		return m.sendMessage(msg.Text)

	case ui.SelectConversationMsg:
		result, cmd := m.selectConversation(msg.ID)
		return result, tea.Batch(cmd, m.setFocus(FocusChat))

	case ui.DeleteConversationMsg:
		return m.requestDelete(msg.ID)

	case ui.NewConversationMsg:
		return m.startNewConversation()

	case ui.FlashTickMsg:
		return m, m.handleFlashTick()

	case ui.TypingTickMsg:
		feed, cmd := m.feed.Update(msg)
		m.feed = feed
		return m, cmd

	case tea.MouseWheelMsg:
		feed, cmd := m.feed.Update(msg)
		m.feed = feed
		return m, cmd

	case helpShortcutTriggeredMsg:
		result, cmd, _ := m.ExecuteShortcut(msg.Key)
		return result, cmd
	}

	if m.modal.IsVisible() {
		// Non-key messages such as cursor blinks belong to the dialog.
		if _, isKey := msg.(tea.KeyPressMsg); !isKey {
			modal, cmd := m.modal.Update(msg)
			m.modal = modal
			return m, cmd
		}
	}

	// Update focused panel for other messages
	if m.focus == FocusDirectory {
		directory, cmd := m.directory.Update(msg)
		m.directory = directory
		cmds = append(cmds, cmd)
	} else {
		composer, cmd := m.composer.Update(msg)
		m.composer = composer
		cmds = append(cmds, cmd)
		m.footer.SetContext(m.footerContext())
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles global keys.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key pressed", "key", key, "focus", m.focus, "modalVisible", m.modal.IsVisible())

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if key == keys.Escape && m.ctrl.Error() != "" {
		m.ctrl.DismissError()
		return m, m.sync()
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// The composer owns up/down, so the transcript scrolls by page keys.
	if m.focus == FocusChat && (key == keys.PgUp || key == keys.PgDown) {
		feed, cmd := m.feed.Update(msg)
		m.feed = feed
		return m, cmd
	}

	return nil, nil
}
