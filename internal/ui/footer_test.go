package ui

import (
	"strings"
	"testing"
	"time"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()

	if len(footer.bindings) == 0 {
		t.Error("Expected default bindings to be set")
	}
	if footer.HasFlash() {
		t.Error("Expected no flash message initially")
	}
}

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Copied reply", FlashSuccess)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Copied reply" {
		t.Errorf("text = %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("duration = %v, want %v", footer.flashMessage.Duration, DefaultFlashDuration)
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false after ClearFlash()")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("Not expired", FlashInfo)

	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.flashMessage = &FlashMessage{
		Text:      "Expired",
		Type:      FlashInfo,
		CreatedAt: time.Now().Add(-10 * time.Second),
		Duration:  5 * time.Second,
	}
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be cleared")
	}
}

func TestFooter_FlashTypes(t *testing.T) {
	tests := []struct {
		name         string
		flashType    FlashType
		expectedIcon string
	}{
		{"Error", FlashError, "✕"},
		{"Warning", FlashWarning, "⚠"},
		{"Info", FlashInfo, "ℹ"},
		{"Success", FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(80)
			footer.SetFlash("Test message", tt.flashType)

			view := footer.View()
			if !strings.Contains(view, tt.expectedIcon) || !strings.Contains(view, "Test message") {
				t.Errorf("Expected %s flash with icon %q", tt.name, tt.expectedIcon)
			}
		})
	}
}

func TestFooter_ContextBindings(t *testing.T) {
	tests := []struct {
		name    string
		ctx     FooterContext
		want    []string
		notWant []string
	}{
		{
			name:    "composer idle",
			ctx:     FooterContext{},
			want:    []string{"send", "newline"},
			notWant: []string{"dismiss", "copy reply", "delete"},
		},
		{
			name:    "composer busy",
			ctx:     FooterContext{Busy: true},
			notWant: []string{"send"},
		},
		{
			name:    "error shown",
			ctx:     FooterContext{ErrorShown: true},
			want:    []string{"dismiss"},
			notWant: []string{"send"},
		},
		{
			name: "reply available",
			ctx:  FooterContext{HasReply: true},
			want: []string{"copy reply"},
		},
		{
			name:    "directory focused",
			ctx:     FooterContext{DirectoryFocused: true},
			want:    []string{"open", "delete"},
			notWant: []string{"send"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(400)
			footer.SetContext(tt.ctx)

			view := stripANSI(footer.View())
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("footer missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("footer should not contain %q", w)
				}
			}
		})
	}
}

func TestFooter_FlashTakesPriority(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(120)
	footer.SetFlash("Nothing to copy yet", FlashWarning)

	view := stripANSI(footer.View())
	if strings.Contains(view, "switch pane") {
		t.Error("flash should replace the bindings")
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick() should return a command")
	}
}
