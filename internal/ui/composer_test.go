package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeText(c *Composer, text string) {
	for _, r := range text {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func newFocusedComposer() *Composer {
	c := NewComposer()
	c.SetWidth(60)
	c.SetFocused(true)
	return c
}

func TestComposer_Typing(t *testing.T) {
	c := newFocusedComposer()
	typeText(c, "hi")

	if c.Value() != "hi" {
		t.Errorf("Value() = %q, want %q", c.Value(), "hi")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestComposer_EnterSubmitsTrimmedDraft(t *testing.T) {
	c := newFocusedComposer()
	c.SetValue("  Where is my order?  ")

	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(SubmitMsg)
	if !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}
	if msg.Text != "Where is my order?" {
		t.Errorf("submitted %q", msg.Text)
	}
	if c.Value() != "" {
		t.Errorf("draft should be cleared, got %q", c.Value())
	}
}

func TestComposer_EnterIgnoresBlankDraft(t *testing.T) {
	tests := []string{"", "   ", "\n\t "}

	for _, draft := range tests {
		t.Run(strings.ReplaceAll(draft, "\n", `\n`), func(t *testing.T) {
			c := newFocusedComposer()
			c.SetValue(draft)
			_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd != nil {
				t.Error("blank draft should not submit")
			}
		})
	}
}

func TestComposer_ShiftEnterInsertsNewline(t *testing.T) {
	c := newFocusedComposer()
	typeText(c, "a")
	c.Update(tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift})
	typeText(c, "b")

	if c.Value() != "a\nb" {
		t.Errorf("Value() = %q, want %q", c.Value(), "a\nb")
	}
}

func TestComposer_CharLimit(t *testing.T) {
	c := newFocusedComposer()
	c.SetValue(strings.Repeat("x", 1200))

	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want the draft capped at 1000", c.Len())
	}
}

func TestComposer_Disabled(t *testing.T) {
	c := newFocusedComposer()
	c.SetValue("hello")
	c.SetDisabled(true, false)

	typeText(c, "!")
	if c.Value() != "hello" {
		t.Errorf("disabled composer accepted input: %q", c.Value())
	}
	if _, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("disabled composer should not submit")
	}
	if c.input.Placeholder != composerDisabledPlaceholder {
		t.Errorf("placeholder = %q", c.input.Placeholder)
	}

	c.SetDisabled(true, true)
	if c.input.Placeholder != composerErrorPlaceholder {
		t.Errorf("placeholder with error = %q", c.input.Placeholder)
	}

	c.SetDisabled(false, false)
	typeText(c, "!")
	if c.Value() != "hello!" {
		t.Errorf("re-enabled composer should accept input, got %q", c.Value())
	}
}

func TestComposer_Counter(t *testing.T) {
	c := newFocusedComposer()
	if strings.Contains(stripANSI(c.View()), "/1000") {
		t.Error("counter should be hidden for an empty draft")
	}

	c.SetValue("héllo")
	if !strings.Contains(stripANSI(c.View()), "5/1000") {
		t.Error("counter should count characters, not bytes")
	}
}

func TestComposer_Focus(t *testing.T) {
	c := NewComposer()
	if c.IsFocused() {
		t.Error("composer should start blurred")
	}
	c.SetFocused(true)
	if !c.IsFocused() {
		t.Error("SetFocused(true) did not focus")
	}
	c.SetFocused(false)
	typeText(c, "x")
	if c.Value() != "" {
		t.Error("blurred composer should ignore keys")
	}
}
