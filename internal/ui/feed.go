package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/api"
)

const (
	WelcomeTitle    = "Welcome to the E-commerce Customer Support Chatbot!"
	WelcomeSubtitle = "Ask me anything about products, orders, or get help with your shopping experience."

	userLabel      = "You"
	assistantLabel = "AI"
	typingText     = "AI is typing"
)

// TypingTickMsg advances the typing indicator animation.
type TypingTickMsg time.Time

// Feed is the scrolling transcript.
type Feed struct {
	viewport viewport.Model
	width    int
	height   int

	messages []api.Message
	loading  bool
	frame    int
	ticking  bool
}

// NewFeed creates an empty feed showing the welcome placeholder.
func NewFeed() *Feed {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	f := &Feed{viewport: vp}
	f.refresh()
	return f
}

// SetSize sets the feed's outer dimensions.
func (f *Feed) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.viewport.SetWidth(max(width, 1))
	f.viewport.SetHeight(max(height, 1))
	f.refresh()
	f.viewport.GotoBottom()
}

// SetTranscript replaces what the feed shows and scrolls to the newest row.
// It starts the typing animation when loading begins.
func (f *Feed) SetTranscript(messages []api.Message, loading bool) tea.Cmd {
	f.messages = messages
	f.loading = loading
	f.refresh()
	f.viewport.GotoBottom()

	if loading && !f.ticking {
		f.ticking = true
		f.frame = 0
		return typingTick()
	}
	return nil
}

// IsLoading reports whether the typing indicator is shown.
func (f *Feed) IsLoading() bool {
	return f.loading
}

// Content returns the rendered transcript.
func (f *Feed) Content() string {
	return RenderTranscript(f.messages, f.loading, f.width, f.frame)
}

// Update handles the typing animation and scrolling.
func (f *Feed) Update(msg tea.Msg) (*Feed, tea.Cmd) {
	if _, ok := msg.(TypingTickMsg); ok {
		if !f.loading {
			f.ticking = false
			return f, nil
		}
		f.frame++
		f.refresh()
		return f, typingTick()
	}

	var cmd tea.Cmd
	f.viewport, cmd = f.viewport.Update(msg)
	return f, cmd
}

// View renders the feed viewport.
func (f *Feed) View() string {
	return f.viewport.View()
}

func (f *Feed) refresh() {
	f.viewport.SetContent(f.Content())
}

func typingTick() tea.Cmd {
	return tea.Tick(TypingTickInterval, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// RenderTranscript renders, in order: the welcome placeholder when there are
// no messages and nothing is loading, one block per message, and the typing
// indicator while loading.
func RenderTranscript(messages []api.Message, loading bool, width, frame int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	if len(messages) == 0 && !loading {
		return renderWelcome(width)
	}

	blocks := make([]string, 0, len(messages)+1)
	for _, m := range messages {
		blocks = append(blocks, renderMessage(m, width))
	}
	if loading {
		blocks = append(blocks, renderTyping(frame))
	}
	return strings.Join(blocks, "\n\n")
}

func renderWelcome(width int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		"",
		ChatWelcomeTitleStyle.Render(WelcomeTitle),
		ChatWelcomeStyle.Width(min(width, len(WelcomeSubtitle))).Align(lipgloss.Center).Render(WelcomeSubtitle),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func renderMessage(m api.Message, width int) string {
	var label, body string
	switch m.Role {
	case api.RoleUser:
		label = ChatUserStyle.Render(userLabel)
		body = ChatMessageStyle.Render(wrapText(m.Content, width))
	default:
		label = ChatAssistantStyle.Render(assistantLabel)
		body = renderMarkdown(m.Content, width)
	}

	header := label
	if ts := api.FormatTimestamp(m.Timestamp); ts != "" {
		header += " " + ChatTimestampStyle.Render(ts)
	}
	return header + "\n" + body
}

func renderTyping(frame int) string {
	dots := strings.Repeat(".", frame%3+1)
	return ChatAssistantStyle.Render(assistantLabel) + "\n" + TypingStyle.Render(typingText+dots)
}
