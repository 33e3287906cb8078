package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/zhubert/supportchat/internal/api"
)

func testMessages() []api.Message {
	return []api.Message{
		{Role: api.RoleUser, Content: "Hello", Timestamp: "2024-01-01T10:00:00Z"},
		{Role: api.RoleAssistant, Content: "Hi there!", Timestamp: "2024-01-01T10:00:02Z"},
	}
}

func TestRenderTranscript_Welcome(t *testing.T) {
	out := stripANSI(RenderTranscript(nil, false, 100, 0))

	if !strings.Contains(out, WelcomeTitle) {
		t.Error("empty transcript should show the welcome title")
	}
	if !strings.Contains(out, "Ask me anything") {
		t.Error("empty transcript should show the welcome subtitle")
	}
}

func TestRenderTranscript_LoadingHidesWelcome(t *testing.T) {
	out := stripANSI(RenderTranscript(nil, true, 100, 0))

	if strings.Contains(out, WelcomeTitle) {
		t.Error("welcome should be hidden while loading")
	}
	if !strings.Contains(out, "AI is typing.") {
		t.Error("typing indicator missing")
	}
}

func TestRenderTranscript_Order(t *testing.T) {
	msgs := append(testMessages(), api.Message{Role: api.RoleUser, Content: "Track order 7"})
	out := stripANSI(RenderTranscript(msgs, true, 100, 0))

	hello := strings.Index(out, "Hello")
	reply := strings.Index(out, "Hi there!")
	track := strings.Index(out, "Track order 7")
	typing := strings.Index(out, "AI is typing")
	if hello < 0 || reply < 0 || track < 0 || typing < 0 {
		t.Fatalf("missing rows in %q", out)
	}
	if !(hello < reply && reply < track && track < typing) {
		t.Error("rows are out of order; the typing indicator must be last")
	}
	if strings.Contains(out, WelcomeTitle) {
		t.Error("welcome should be hidden when messages exist")
	}
}

func TestRenderTranscript_LabelsAndTimestamps(t *testing.T) {
	out := stripANSI(RenderTranscript(testMessages(), false, 100, 0))

	if !strings.Contains(out, "You") || !strings.Contains(out, "AI") {
		t.Error("role labels missing")
	}
	if ts := api.FormatTimestamp("2024-01-01T10:00:00Z"); !strings.Contains(out, ts) {
		t.Errorf("timestamp %q missing", ts)
	}
	if strings.Contains(out, "AI is typing") {
		t.Error("typing indicator should be hidden when idle")
	}
}

func TestRenderTranscript_TypingDots(t *testing.T) {
	tests := []struct {
		frame int
		want  string
	}{
		{0, "AI is typing."},
		{1, "AI is typing.."},
		{2, "AI is typing..."},
		{3, "AI is typing."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			lines := strings.Split(stripANSI(RenderTranscript(nil, true, 80, tt.frame)), "\n")
			if last := strings.TrimSpace(lines[len(lines)-1]); last != tt.want {
				t.Errorf("typing row = %q, want %q", last, tt.want)
			}
		})
	}
}

func TestRenderTranscript_AssistantMarkdown(t *testing.T) {
	msgs := []api.Message{{Role: api.RoleAssistant, Content: "Your order is **shipped**.\n- item one"}}
	out := stripANSI(RenderTranscript(msgs, false, 80, 0))

	if strings.Contains(out, "**") {
		t.Error("bold markers should be rendered")
	}
	if !strings.Contains(out, "• item one") {
		t.Error("bullet should be rendered")
	}
}

func TestFeed_TypingTick(t *testing.T) {
	f := NewFeed()
	f.SetSize(80, 20)

	if cmd := f.SetTranscript(nil, true); cmd == nil {
		t.Fatal("loading should start the typing animation")
	}
	if cmd := f.SetTranscript(nil, true); cmd != nil {
		t.Error("a running animation should not be started twice")
	}

	_, cmd := f.Update(TypingTickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick while loading should schedule the next tick")
	}
	if f.frame != 1 {
		t.Errorf("frame = %d, want 1", f.frame)
	}

	f.SetTranscript(testMessages(), false)
	if _, cmd := f.Update(TypingTickMsg(time.Now())); cmd != nil {
		t.Error("tick after loading ended should stop the animation")
	}
	if f.IsLoading() {
		t.Error("IsLoading() should be false")
	}
}
