package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	vc := ui.GetViewContext()
	panels := m.renderChatPane(vc)
	if !vc.SidebarHidden() {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, m.directory.View(), panels)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// renderChatPane stacks the error banner, transcript and composer.
func (m *Model) renderChatPane(vc *ui.ViewContext) string {
	style := ui.PanelStyle
	if m.focus == FocusChat {
		style = ui.PanelFocusedStyle
	}
	feedHeight := vc.ContentHeight - ui.ComposerTotalHeight - m.bannerHeight(vc)
	feed := style.Width(vc.ChatWidth).Height(max(feedHeight, ui.BorderSize+1)).Render(m.feed.View())

	parts := []string{}
	if banner := ui.RenderErrorBanner(m.ctrl.Error(), vc.ChatWidth); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, feed, m.composer.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) bannerHeight(vc *ui.ViewContext) int {
	banner := ui.RenderErrorBanner(m.ctrl.Error(), vc.ChatWidth)
	if banner == "" {
		return 0
	}
	return lipgloss.Height(banner)
}

func (m *Model) footerContext() ui.FooterContext {
	st := m.ctrl.State()
	_, hasReply := st.LastReply()
	return ui.FooterContext{
		DirectoryFocused: m.focus == FocusDirectory,
		Busy:             st.Busy(),
		ErrorShown:       st.Error() != "",
		HasReply:         hasReply,
	}
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	vc := ui.GetViewContext()
	vc.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(vc.TerminalWidth)
	m.footer.SetWidth(vc.TerminalWidth)
	m.directory.SetSize(vc.SidebarWidth, vc.ContentHeight)
	m.composer.SetWidth(vc.ChatWidth)
	m.layoutChat()
}

// layoutChat sizes the transcript to whatever the banner and composer leave.
func (m *Model) layoutChat() {
	vc := ui.GetViewContext()
	if vc.ChatWidth == 0 {
		return
	}
	feedHeight := max(vc.ContentHeight-ui.ComposerTotalHeight-m.bannerHeight(vc), ui.BorderSize+1)
	m.feed.SetSize(vc.InnerWidth(vc.ChatWidth), vc.InnerHeight(feedHeight))
}
