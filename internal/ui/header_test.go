package ui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/zhubert/supportchat/internal/api"
)

func TestHeader_View(t *testing.T) {
	tests := []struct {
		name   string
		active api.SessionID
		health HealthState
		want   []string
	}{
		{"fresh conversation", "", HealthUnknown, []string{AppTitle, "New Conversation", "checking"}},
		{"bound conversation", "42", HealthOK, []string{AppTitle, "Session 42", "online"}},
		{"service down", "7", HealthDown, []string{"Session 7", "offline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHeader()
			h.SetWidth(100)
			h.SetActive(tt.active)
			h.SetHealth(tt.health)

			out := stripANSI(h.View())
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("header %q missing %q", out, want)
				}
			}
		})
	}
}

func TestHeader_FillsWidth(t *testing.T) {
	h := NewHeader()
	h.SetWidth(90)

	if got := runewidth.StringWidth(stripANSI(h.View())); got != 90 {
		t.Errorf("header width = %d, want 90", got)
	}
}

func TestHeader_NarrowTruncates(t *testing.T) {
	h := NewHeader()
	h.SetWidth(20)
	h.SetActive("123456")

	if got := runewidth.StringWidth(stripANSI(h.View())); got > 20 {
		t.Errorf("header width = %d, want at most 20", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#2563EB", 0x25, 0x63, 0xEB},
		{"#000000", 0, 0, 0},
		{"invalid", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			r, g, b := parseHexColor(tt.hex)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHexColor(%q) = %d,%d,%d", tt.hex, r, g, b)
			}
		})
	}
}
