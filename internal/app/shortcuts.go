package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/supportchat/internal/keys"
	"github.com/zhubert/supportchat/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for the global shortcuts.
type Shortcut struct {
	Key               string                              // The key binding (e.g., "q", "ctrl+n")
	DisplayKey        string                              // Display name in help; defaults to Key
	Description       string                              // Human-readable description
	Category          string                              // Section for help modal grouping
	RequiresDirectory bool                                // Only fires while the directory is focused
	Handler           func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition         func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryChat          = "Chat"
	CategoryGeneral       = "General"
)

var categoryOrder = []string{
	CategoryNavigation,
	CategoryConversations,
	CategoryChat,
	CategoryGeneral,
}

// ShortcutRegistry lists the shortcuts handled before the focused panel sees
// a key. Entries appear in the help modal and can be run from it.
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Switch between conversations and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.CtrlB,
		Description: "Show or hide the conversation list",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleSidebar,
	},
	{
		Key:         keys.CtrlN,
		Description: "Start a new conversation",
		Category:    CategoryConversations,
		Handler:     shortcutNewConversation,
	},
	{
		Key:         keys.CtrlR,
		Description: "Refresh conversations and service status",
		Category:    CategoryConversations,
		Handler:     shortcutRefresh,
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy the latest reply",
		Category:    CategoryChat,
		Handler:     shortcutCopyReply,
	},
	{
		Key:         keys.CtrlO,
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:               "q",
		Description:       "Quit",
		Category:          CategoryGeneral,
		RequiresDirectory: true,
		Handler:           shortcutQuit,
	},
}

// helpShortcut references ShortcutRegistry through its handler, so it is
// kept out of the registry to avoid an initialization cycle.
var helpShortcut = Shortcut{
	Key:               "?",
	Description:       "Show this help",
	Category:          CategoryGeneral,
	RequiresDirectory: true,
}

// DisplayOnlyShortcuts are shown in help but handled by the panels themselves.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Move through conversations", Category: CategoryNavigation},
	{DisplayKey: "g/G", Description: "First / last conversation", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open conversation / Send message", Category: CategoryConversations},
	{DisplayKey: "d", Description: "Delete conversation", Category: CategoryConversations},
	{DisplayKey: "n", Description: "New conversation (from the list)", Category: CategoryConversations},
	{DisplayKey: "shift+enter", Description: "Insert a line break", Category: CategoryChat},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll the transcript", Category: CategoryChat},
	{DisplayKey: "Esc", Description: "Dismiss the error banner", Category: CategoryChat},
	{DisplayKey: "ctrl+c", Description: "Quit from anywhere", Category: CategoryGeneral},
}

func (s Shortcut) displayKey() string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresDirectory && m.focus != FocusDirectory {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and runs the shortcut bound to key.
// Returns (model, cmd, true) if it ran, or (model, nil, false) if no shortcut
// matched or its guards failed, in which case the key belongs to the panel.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == keys.ShiftTab {
		key = keys.Tab
	}

	if key == helpShortcut.Key {
		if !m.isShortcutApplicable(helpShortcut) {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key, "focus", m.focus)
			return m, nil, false
		}
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups every shortcut by category in categoryOrder.
func helpSections() []modals.HelpSection {
	grouped := make(map[string][]modals.HelpShortcut)
	all := append(append([]Shortcut{}, ShortcutRegistry...), helpShortcut)
	all = append(all, DisplayOnlyShortcuts...)
	for _, s := range all {
		grouped[s.Category] = append(grouped[s.Category], modals.HelpShortcut{
			Key:  s.displayKey(),
			Desc: s.Description,
		})
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if len(grouped[cat]) == 0 {
			continue
		}
		sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: grouped[cat]})
	}
	return sections
}

// shortcutForDisplayKey maps a help row back to its executable key. Display
// only rows map to "".
func shortcutForDisplayKey(display string) string {
	if display == helpShortcut.displayKey() {
		return helpShortcut.Key
	}
	for _, s := range ShortcutRegistry {
		if s.displayKey() == display {
			return s.Key
		}
	}
	return ""
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	if m.focus == FocusDirectory {
		return m, m.setFocus(FocusChat)
	}
	return m, m.setFocus(FocusDirectory)
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(helpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
