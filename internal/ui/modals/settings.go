package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/config"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

const (
	optionNotifications = "notifications"
	optionConfirmDelete = "confirm-delete"
)

type SettingsState struct {
	// Bound form values
	selectedTheme        string
	OriginalTheme        string
	apiURL               string
	OriginalAPIURL       string
	NotificationsEnabled bool
	ConfirmDelete        bool

	// MultiSelect bindings
	generalOptions []string

	form *huh.Form

	availableWidth int
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidth }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return max(s.availableWidth-10, 20)
	}
	return ModalWidth - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updateForm(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.generalOptions, optionNotifications)
	s.ConfirmDelete = slices.Contains(s.generalOptions, optionConfirmDelete)
}

// GetSelectedTheme returns the selected theme key.
func (s *SettingsState) GetSelectedTheme() string {
	return s.selectedTheme
}

// ThemeChanged returns true if the selected theme differs from the original.
func (s *SettingsState) ThemeChanged() bool {
	return s.selectedTheme != s.OriginalTheme
}

// GetAPIURL returns the trimmed service URL.
func (s *SettingsState) GetAPIURL() string {
	return strings.TrimRight(strings.TrimSpace(s.apiURL), "/")
}

// APIURLChanged reports whether the service URL was edited.
func (s *SettingsState) APIURLChanged() bool {
	return s.GetAPIURL() != s.OriginalAPIURL
}

// SetAPIURL sets the service URL value.
// huh binds via pointer, so this is reflected in the form.
func (s *SettingsState) SetAPIURL(v string) {
	s.apiURL = v
}

// Validate checks the edited values before they are saved.
func (s *SettingsState) Validate() error {
	return config.ValidateAPIURL(s.GetAPIURL())
}

// NewSettingsState creates the settings form from the current preferences.
func NewSettingsState(themes []string, themeDisplayNames []string, currentTheme string,
	apiURL string, notificationsEnabled, confirmDelete bool) *SettingsState {

	s := &SettingsState{
		selectedTheme:        currentTheme,
		OriginalTheme:        currentTheme,
		apiURL:               apiURL,
		OriginalAPIURL:       strings.TrimRight(apiURL, "/"),
		NotificationsEnabled: notificationsEnabled,
		ConfirmDelete:        confirmDelete,
		availableWidth:       ModalWidth,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Confirm before deleting", optionConfirmDelete).
			Selected(confirmDelete),
	}
	if notificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if confirmDelete {
		s.generalOptions = append(s.generalOptions, optionConfirmDelete)
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&s.selectedTheme),
		huh.NewInput().
			Title("Support service URL").
			Description("Base URL of the chat service").
			Placeholder(config.DefaultAPIURL).
			CharLimit(ModalInputCharLimit).
			Validate(func(v string) error {
				return config.ValidateAPIURL(strings.TrimSpace(v))
			}).
			Value(&s.apiURL),
		huh.NewMultiSelect[string]().
			Title("Options").
			Options(generalOpts...).
			Height(len(generalOpts)).
			Value(&s.generalOptions),
	)).
		WithTheme(formTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	s.form.Init()
	return s
}
