package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/ui"
)

// ShowFlash displays a footer notice and, unless one is already running,
// starts the timer that expires it.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	if m.flashTicking {
		return nil
	}
	m.flashTicking = true
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd   { return m.ShowFlash(text, ui.FlashError) }
func (m *Model) ShowFlashWarning(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashWarning) }
func (m *Model) ShowFlashSuccess(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashSuccess) }

func (m *Model) handleFlashTick() tea.Cmd {
	m.footer.ClearIfExpired()
	if !m.footer.HasFlash() {
		m.flashTicking = false
		return nil
	}
	return ui.FlashTick()
}
