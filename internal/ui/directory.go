package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/keys"
)

const (
	directoryTitle = "Conversations"
	emptyTitle     = "No conversations yet"
	emptyHint      = "Start a new chat to see it here"
	noMessages     = "No messages yet"
	ellipsis       = "..."

	// rowHeight is two text lines plus a spacer
	rowHeight = 3
)

// SelectConversationMsg asks to open a conversation.
type SelectConversationMsg struct {
	ID api.SessionID
}

// DeleteConversationMsg asks to delete a conversation.
type DeleteConversationMsg struct {
	ID api.SessionID
}

// NewConversationMsg asks to start a fresh conversation.
type NewConversationMsg struct{}

// Directory is the sidebar listing persisted conversations.
type Directory struct {
	width   int
	height  int
	focused bool

	conversations []api.ConversationSummary
	active        api.SessionID
	ready         bool

	selectedIdx  int
	scrollOffset int

	now func() time.Time
}

// NewDirectory creates a directory in its loading state.
func NewDirectory() *Directory {
	return &Directory{now: time.Now}
}

// SetSize sets the panel dimensions including borders.
func (d *Directory) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.ensureVisible()
}

// Width returns the panel width.
func (d *Directory) Width() int {
	return d.width
}

// SetFocused sets the focus state
func (d *Directory) SetFocused(focused bool) {
	d.focused = focused
}

// IsFocused returns the focus state
func (d *Directory) IsFocused() bool {
	return d.focused
}

// SetClock replaces the time source used for recency labels.
func (d *Directory) SetClock(now func() time.Time) {
	d.now = now
}

// SetConversations replaces the listing. The cursor stays on the same
// conversation when it is still listed.
func (d *Directory) SetConversations(list []api.ConversationSummary, active api.SessionID, ready bool) {
	var current api.SessionID
	if sel, ok := d.Selected(); ok {
		current = sel.ID
	}

	d.conversations = list
	d.active = active
	d.ready = ready

	d.selectedIdx = min(d.selectedIdx, max(len(list)-1, 0))
	if !current.IsZero() {
		for i, c := range list {
			if c.ID == current {
				d.selectedIdx = i
				break
			}
		}
	}
	d.ensureVisible()
}

// Selected returns the conversation under the cursor.
func (d *Directory) Selected() (api.ConversationSummary, bool) {
	if d.selectedIdx < 0 || d.selectedIdx >= len(d.conversations) {
		return api.ConversationSummary{}, false
	}
	return d.conversations[d.selectedIdx], true
}

// SelectByID moves the cursor to id if it is listed.
func (d *Directory) SelectByID(id api.SessionID) {
	for i, c := range d.conversations {
		if c.ID == id {
			d.selectedIdx = i
			d.ensureVisible()
			return
		}
	}
}

// Update handles navigation. Enter selects the row under the cursor unless it
// is already active; d or delete deletes it without selecting.
func (d *Directory) Update(msg tea.Msg) (*Directory, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !d.focused {
		return d, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if d.selectedIdx > 0 {
			d.selectedIdx--
		}
	case keys.Down, "j":
		if d.selectedIdx < len(d.conversations)-1 {
			d.selectedIdx++
		}
	case keys.Home, "g":
		d.selectedIdx = 0
	case keys.End, "G":
		d.selectedIdx = max(len(d.conversations)-1, 0)
	case keys.Enter:
		sel, ok := d.Selected()
		if !ok || sel.ID == d.active {
			return d, nil
		}
		return d, func() tea.Msg { return SelectConversationMsg{ID: sel.ID} }
	case "d", keys.Delete:
		sel, ok := d.Selected()
		if !ok {
			return d, nil
		}
		return d, func() tea.Msg { return DeleteConversationMsg{ID: sel.ID} }
	case "n":
		return d, func() tea.Msg { return NewConversationMsg{} }
	}
	d.ensureVisible()
	return d, nil
}

func (d *Directory) visibleRows() int {
	inner := GetViewContext().InnerHeight(d.height) - 2 // title and spacer
	return max(inner/rowHeight, 1)
}

func (d *Directory) ensureVisible() {
	visible := d.visibleRows()
	if d.selectedIdx < d.scrollOffset {
		d.scrollOffset = d.selectedIdx
	} else if d.selectedIdx >= d.scrollOffset+visible {
		d.scrollOffset = d.selectedIdx - visible + 1
	}
	d.scrollOffset = max(min(d.scrollOffset, len(d.conversations)-visible), 0)
}

// View renders the panel.
func (d *Directory) View() string {
	vc := GetViewContext()
	style := PanelStyle
	if d.focused {
		style = PanelFocusedStyle
	}
	innerWidth := max(vc.InnerWidth(d.width), 1)
	innerHeight := max(vc.InnerHeight(d.height), 1)

	lines := []string{PanelTitleStyle.Render(directoryTitle), ""}
	switch {
	case !d.ready:
		lines = append(lines, renderSkeleton(innerWidth)...)
	case len(d.conversations) == 0:
		lines = append(lines,
			DirectoryEmptyStyle.Render(emptyTitle),
			DirectoryMetaStyle.Render(ansi.Truncate(emptyHint, innerWidth, "…")),
		)
	default:
		end := min(d.scrollOffset+d.visibleRows(), len(d.conversations))
		for i := d.scrollOffset; i < end; i++ {
			lines = append(lines, d.renderRow(d.conversations[i], i == d.selectedIdx, innerWidth)...)
		}
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	return style.Width(d.width).Height(d.height).Render(strings.Join(lines, "\n"))
}

func (d *Directory) renderRow(c api.ConversationSummary, selected bool, width int) []string {
	itemStyle := DirectoryItemStyle
	if selected {
		itemStyle = DirectorySelectedStyle
	}
	textWidth := max(width-itemStyle.GetHorizontalPadding(), 1)

	title := RowTitle(c.ID)
	if c.ID == d.active {
		title = DirectoryActiveStyle.Render("● ") + title
	}
	recency := RecencyLabel(c.CreatedAt, d.now())
	gap := max(textWidth-ansi.StringWidth(title)-ansi.StringWidth(recency), 1)
	top := ansi.Truncate(title+strings.Repeat(" ", gap)+DirectoryMetaStyle.Render(recency), textWidth, "…")
	preview := DirectoryMetaStyle.Render(ansi.Truncate(Preview(c), textWidth, "…"))

	return []string{
		itemStyle.Width(width).Render(top),
		itemStyle.Width(width).Render(preview),
		"",
	}
}

func renderSkeleton(width int) []string {
	bar := SkeletonStyle.Render(strings.Repeat("░", max(width-2, 1)))
	short := SkeletonStyle.Render(strings.Repeat("░", max(width/2, 1)))
	var lines []string
	for i := 0; i < SkeletonRows; i++ {
		lines = append(lines, " "+bar, " "+short, "")
	}
	return lines
}

// RowTitle names a directory row.
func RowTitle(id api.SessionID) string {
	return "Session " + id.String()
}

// Preview returns the last message of c cut to PreviewLength characters,
// with an ellipsis when cut, or "No messages yet". Line breaks and tabs are
// shown as spaces but still count toward the length.
func Preview(c api.ConversationSummary) string {
	if len(c.Messages) == 0 {
		return noMessages
	}
	content := c.Messages[len(c.Messages)-1].Content

	var b strings.Builder
	g := uniseg.NewGraphemes(content)
	for n := 0; g.Next(); n++ {
		if n == PreviewLength {
			return b.String() + ellipsis
		}
		if s := g.Str(); strings.ContainsAny(s, "\r\n\t") {
			b.WriteByte(' ')
		} else {
			b.WriteString(s)
		}
	}
	return b.String()
}

// RecencyLabel describes createdAt relative to now: "Just now" under an
// hour, "<N>h ago" under a day, and the calendar date otherwise.
func RecencyLabel(createdAt string, now time.Time) string {
	t, err := api.ParseTimestamp(createdAt)
	if err != nil {
		return ""
	}
	hours := int(now.Sub(t) / time.Hour)
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return t.Local().Format("1/2/2006")
	}
}
