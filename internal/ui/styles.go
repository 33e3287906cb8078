package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/ui/modals"
)

// Color palette, regenerated from the active theme.
var (
	ColorPrimary     = lipgloss.Color("#2563EB")
	ColorSecondary   = lipgloss.Color("#14B8A6")
	ColorMuted       = lipgloss.Color("#9CA3AF")
	ColorBorder      = lipgloss.Color("#374151")
	ColorBorderFocus = lipgloss.Color("#2563EB")
	ColorBg          = lipgloss.Color("#111827")
	ColorBgSelected  = lipgloss.Color("#1E3A8A")
	ColorText        = lipgloss.Color("#F9FAFB")
	ColorTextMuted   = lipgloss.Color("#9CA3AF")
	ColorTextInverse = lipgloss.Color("#111827")
	ColorUser        = lipgloss.Color("#60A5FA")
	ColorAssistant   = lipgloss.Color("#2DD4BF")
	ColorWarning     = lipgloss.Color("#F59E0B")
	ColorInfo        = lipgloss.Color("#38BDF8")
	ColorError       = lipgloss.Color("#EF4444")
	ColorSuccess     = lipgloss.Color("#22C55E")
	ColorCode        = lipgloss.Color("#99F6E4")
	ColorCodeBg      = lipgloss.Color("#1F2937")
	ColorLink        = lipgloss.Color("#93C5FD")
)

// Header and footer
var (
	HeaderStyle     lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panels
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Directory rows
var (
	DirectoryItemStyle     lipgloss.Style
	DirectorySelectedStyle lipgloss.Style
	DirectoryActiveStyle   lipgloss.Style
	DirectoryMetaStyle     lipgloss.Style
	DirectoryEmptyStyle    lipgloss.Style
	SkeletonStyle          lipgloss.Style
)

// Feed and composer
var (
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatTimestampStyle    lipgloss.Style
	ChatWelcomeTitleStyle lipgloss.Style
	ChatWelcomeStyle      lipgloss.Style
	TypingStyle           lipgloss.Style
	ComposerStyle         lipgloss.Style
	ComposerFocusedStyle  lipgloss.Style
	ComposerCounterStyle  lipgloss.Style
	ErrorBannerStyle      lipgloss.Style
)

// Modals and status text
var (
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

// Markdown
var (
	MarkdownHeadingStyle    lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
)

func init() {
	regenerateStyles()
}

func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	DirectoryItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	DirectorySelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	DirectoryActiveStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	DirectoryMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	DirectoryEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	SkeletonStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ChatWelcomeTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	ChatWelcomeStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	TypingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	ComposerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ComposerFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ComposerCounterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorError).
		Bold(true).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownHeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(ColorCode).
		Background(ColorCodeBg)

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(ColorLink).
		Underline(true)

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}

// syncModalStyles hands the current styles to the modals package, which
// cannot import ui.
func syncModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, DirectoryItemStyle, DirectorySelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorError, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
