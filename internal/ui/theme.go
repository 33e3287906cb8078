package ui

import "charm.land/lipgloss/v2"

// Theme is a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (focus, header, titles)
	Primary string
	// Secondary is used for key hints and the assistant
	Secondary string

	Bg         string // Main background
	BgSelected string // Selected row background (defaults to Primary if empty)

	Text        string
	TextMuted   string
	TextInverse string // Text on colored backgrounds

	User      string // User message labels
	Assistant string // Assistant message labels
	Warning   string
	Error     string
	Info      string
	Success   string

	Border      string
	BorderFocus string // defaults to Primary if empty

	Code   string // Inline code
	CodeBg string // Code background
	Link   string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName identifies a built-in theme.
type ThemeName string

const (
	ThemeStorefront ThemeName = "storefront"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeTokyoNight ThemeName = "tokyo-night"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is used when the config names no theme or an unknown one.
const DefaultTheme = ThemeStorefront

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeStorefront: {
		Name:        "Storefront",
		Primary:     "#2563EB",
		Secondary:   "#14B8A6",
		Bg:          "#111827",
		BgSelected:  "#1E3A8A",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#111827",
		User:        "#60A5FA",
		Assistant:   "#2DD4BF",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#38BDF8",
		Success:     "#22C55E",
		Border:      "#374151",
		Code:        "#99F6E4",
		CodeBg:      "#1F2937",
		Link:        "#93C5FD",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		User:        "#A3BE8C",
		Assistant:   "#88C0D0",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		Code:        "#A3BE8C",
		CodeBg:      "#242933",
		Link:        "#88C0D0",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		User:        "#FF79C6",
		Assistant:   "#8BE9FD",
		Warning:     "#FFB86C",
		Error:       "#FF5555",
		Info:        "#8BE9FD",
		Success:     "#50FA7B",
		Border:      "#44475A",
		Code:        "#50FA7B",
		CodeBg:      "#21222C",
		Link:        "#8BE9FD",
	},
	ThemeTokyoNight: {
		Name:        "Tokyo Night",
		Primary:     "#7AA2F7",
		Secondary:   "#BB9AF7",
		Bg:          "#1A1B26",
		Text:        "#C0CAF5",
		TextMuted:   "#565F89",
		TextInverse: "#1A1B26",
		User:        "#9ECE6A",
		Assistant:   "#7AA2F7",
		Warning:     "#E0AF68",
		Error:       "#F7768E",
		Info:        "#7DCFFF",
		Success:     "#9ECE6A",
		Border:      "#3B4261",
		Code:        "#9ECE6A",
		CodeBg:      "#16161E",
		Link:        "#7DCFFF",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#2563EB",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#DBEAFE",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		User:        "#1D4ED8",
		Assistant:   "#0E7490",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Info:        "#0891B2",
		Success:     "#16A34A",
		Border:      "#D1D5DB",
		Code:        "#047857",
		CodeBg:      "#F3F4F6",
		Link:        "#0369A1",
	},
}

// ThemeNames returns all built-in theme names in display order.
func ThemeNames() []ThemeName {
	return []ThemeName{ThemeStorefront, ThemeNord, ThemeDracula, ThemeTokyoNight, ThemeLight}
}

// GetTheme returns a theme by name, falling back to DefaultTheme.
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var (
	currentTheme     = BuiltinThemes[DefaultTheme]
	currentThemeName = DefaultTheme
)

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return currentTheme
}

// CurrentThemeName returns the name of the active theme.
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// SetTheme activates a theme and regenerates every style derived from it.
// Unknown names select DefaultTheme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentThemeName = name
	currentTheme = BuiltinThemes[name]
	regenerateStyles()
}

// SetThemeByName activates a theme by its string name.
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// regenerateStyles rebuilds all style variables from the current theme.
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorBgSelected = lipgloss.Color(t.GetBgSelected())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorCode = lipgloss.Color(t.Code)
	ColorCodeBg = lipgloss.Color(t.CodeBg)
	ColorLink = lipgloss.Color(t.Link)

	buildStyles()
	syncModalStyles()
}
