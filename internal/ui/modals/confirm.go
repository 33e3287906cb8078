package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/keys"
)

// =============================================================================
// ConfirmDeleteState - State for the Confirm Delete modal
// =============================================================================

type ConfirmDeleteState struct {
	ID            api.SessionID
	Preview       string
	Options       []string
	SelectedIndex int
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Conversation?" }

func (s *ConfirmDeleteState) Help() string {
	return "up/down to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	label := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Render("Session " + s.ID.String())

	preview := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		Width(ModalInputWidth).
		MarginBottom(1).
		Render(s.Preview)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("The conversation and its messages will be removed.")

	optionList := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, label, preview, message, optionList, help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		case "y":
			s.SelectedIndex = 1
		case "n":
			s.SelectedIndex = 0
		}
	}
	return s, nil
}

// Confirmed reports whether the delete option is selected.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.SelectedIndex == 1
}

// NewConfirmDeleteState creates a ConfirmDeleteState with Cancel selected.
func NewConfirmDeleteState(id api.SessionID, preview string) *ConfirmDeleteState {
	return &ConfirmDeleteState{
		ID:            id,
		Preview:       preview,
		Options:       []string{"Cancel", "Delete conversation"},
		SelectedIndex: 0,
	}
}
