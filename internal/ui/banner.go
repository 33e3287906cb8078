package ui

import (
	"github.com/charmbracelet/x/ansi"
)

// RenderErrorBanner renders the single error banner, or "" when msg is empty.
func RenderErrorBanner(msg string, width int) string {
	if msg == "" {
		return ""
	}
	text := ansi.Wrap("✕ "+msg+"  (esc to dismiss)", max(width-ErrorBannerStyle.GetHorizontalFrameSize(), 1), "")
	return ErrorBannerStyle.Width(width).Render(text)
}
