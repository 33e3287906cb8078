package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/supportchat/internal/api"
)

// AppTitle is shown at the left of the header.
const AppTitle = "E-commerce Customer Support"

// HealthState is the last known service status.
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthOK
	HealthDown
)

// Header represents the top header bar
type Header struct {
	width  int
	active api.SessionID
	health HealthState
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetActive sets the conversation shown at the right of the header.
func (h *Header) SetActive(id api.SessionID) {
	h.active = id
}

// SetHealth records the service status.
func (h *Header) SetHealth(state HealthState) {
	h.health = state
}

// Health returns the last recorded service status.
func (h *Header) Health() HealthState {
	return h.health
}

func (h *Header) conversationLabel() string {
	if h.active.IsZero() {
		return "New Conversation"
	}
	return RowTitle(h.active)
}

func (h *Header) healthLabel() string {
	switch h.health {
	case HealthOK:
		return "● online"
	case HealthDown:
		return "● offline"
	default:
		return "○ checking"
	}
}

// View renders the header
func (h *Header) View() string {
	titleText := " " + AppTitle
	statusText := h.healthLabel()
	rightText := h.conversationLabel() + "  " + statusText + " "

	paddingLen := max(h.width-runewidth.StringWidth(titleText)-runewidth.StringWidth(rightText), 0)
	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText
	fullContent = runewidth.Truncate(fullContent, max(h.width, 0), "")

	return h.renderGradient(fullContent, runewidth.StringWidth(titleText), statusText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient paints content over a gradient from the primary color to the
// background. The first boldCols columns are bold and the status marker is
// colored by health.
func (h *Header) renderGradient(content string, boldCols int, status string) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	statusColor := lipgloss.Color(theme.TextMuted)
	switch h.health {
	case HealthOK:
		statusColor = lipgloss.Color(theme.Success)
	case HealthDown:
		statusColor = lipgloss.Color(theme.Error)
	}

	runes := []rune(content)
	statusStart := -1
	if idx := strings.LastIndex(content, status); idx >= 0 {
		statusStart = len([]rune(content[:idx]))
	}

	width := len(runes)
	var result strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < boldCols)

		// only the dot takes the status color
		if i == statusStart {
			style = style.Foreground(statusColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
