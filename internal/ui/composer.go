package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/supportchat/internal/chat"
	"github.com/zhubert/supportchat/internal/keys"
)

const (
	composerPlaceholder         = "Type your message..."
	composerDisabledPlaceholder = "Waiting for the assistant..."
	composerErrorPlaceholder    = "Press esc to dismiss the error"
)

// SubmitMsg carries a committed draft, already trimmed.
type SubmitMsg struct {
	Text string
}

// Composer is the message input box.
type Composer struct {
	input    textarea.Model
	width    int
	focused  bool
	disabled bool
}

// NewComposer creates an empty, enabled composer.
func NewComposer() *Composer {
	ta := textarea.New()
	ta.Placeholder = composerPlaceholder
	ta.CharLimit = chat.MaxMessageLength
	ta.SetHeight(ComposerHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	// Bare enter submits; these insert a line break instead.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys(keys.ShiftEnter, keys.AltEnter, keys.CtrlJ))
	styles := ta.Styles()
	styles.Cursor.BlinkSpeed = CursorBlinkSpeed
	ta.SetStyles(styles)

	return &Composer{input: ta}
}

// SetWidth sets the outer width of the composer box.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.SetWidth(max(GetViewContext().InnerWidth(width)-InputPaddingWidth, 1))
}

// SetFocused sets the focus state
func (c *Composer) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused && !c.disabled {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Composer) IsFocused() bool {
	return c.focused
}

// SetDisabled blocks input and submission. errorShown picks the placeholder.
func (c *Composer) SetDisabled(disabled, errorShown bool) {
	c.disabled = disabled
	switch {
	case !disabled:
		c.input.Placeholder = composerPlaceholder
		if c.focused {
			c.input.Focus()
		}
	case errorShown:
		c.input.Placeholder = composerErrorPlaceholder
		c.input.Blur()
	default:
		c.input.Placeholder = composerDisabledPlaceholder
		c.input.Blur()
	}
}

// Disabled reports whether the composer rejects input.
func (c *Composer) Disabled() bool {
	return c.disabled
}

// Value returns the raw draft.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the draft, truncated to the character limit.
func (c *Composer) SetValue(s string) {
	c.input.SetValue(s)
}

// Len returns the draft length in characters.
func (c *Composer) Len() int {
	return utf8.RuneCountInString(c.input.Value())
}

// Update handles key presses. Enter submits a valid draft and clears it;
// an empty draft or a disabled composer makes enter a no-op.
func (c *Composer) Update(msg tea.Msg) (*Composer, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if c.disabled {
			return c, nil
		}
		if msg.String() == keys.Enter {
			return c, c.submit()
		}
	case tea.PasteMsg:
		if c.disabled {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Composer) submit() tea.Cmd {
	text, err := chat.ValidateDraft(c.input.Value())
	if err != nil {
		return nil
	}
	c.input.Reset()
	return func() tea.Msg { return SubmitMsg{Text: text} }
}

// View renders the composer box with its character counter.
func (c *Composer) View() string {
	style := ComposerStyle
	if c.focused && !c.disabled {
		style = ComposerFocusedStyle
	}
	if c.width > 0 {
		style = style.Width(c.width)
	}

	counter := ""
	if n := c.Len(); n > 0 {
		counter = ComposerCounterStyle.Render(fmt.Sprintf("%d/%d", n, chat.MaxMessageLength))
	}
	inner := max(GetViewContext().InnerWidth(c.width)-InputPaddingWidth, 0)
	counterLine := lipgloss.PlaceHorizontal(inner, lipgloss.Right, counter)

	return style.Render(strings.Join([]string{c.input.View(), counterLine}, "\n"))
}
