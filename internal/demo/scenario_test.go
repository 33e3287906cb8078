package demo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultScenario(t *testing.T) {
	s := DefaultScenario()
	if len(s.Replies) == 0 {
		t.Fatal("default scenario has no replies")
	}
	if s.Delay <= 0 {
		t.Errorf("default delay = %v, want a visible typing pause", s.Delay)
	}
}

func TestScenario_Match(t *testing.T) {
	s := &Scenario{
		Fallback: "How can I help?\n",
		Replies: []Reply{
			{Keywords: []string{"hi"}, Response: "Hello!\n"},
			{Keywords: []string{"order", "orders"}, Response: "Your order shipped."},
			{Keywords: []string{"outage"}, Response: "boom", Status: 500},
		},
	}

	tests := []struct {
		message    string
		wantPrefix string
		wantStatus int
	}{
		{"hi", "Hello!", 0},
		{"HI THERE", "Hello!", 0},
		{"Where are my orders?", "Your order shipped.", 0},
		{"shipping question", "How can I help?", 0},
		{"simulate an outage", "boom", 500},
		{"", "How can I help?", 0},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := s.Match(tt.message)
			if got.Response != tt.wantPrefix {
				t.Errorf("Match(%q).Response = %q, want %q", tt.message, got.Response, tt.wantPrefix)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Match(%q).Status = %d, want %d", tt.message, got.Status, tt.wantStatus)
			}
		})
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "replies: [unterminated"},
		{"missing fallback", "replies: []"},
		{"negative delay", "delay: -1s\nfallback: x"},
		{"reply without keywords", "fallback: x\nreplies:\n  - response: y"},
		{"bad status", "fallback: x\nreplies:\n  - keywords: [a]\n    status: 200"},
		{"bad sample type", "fallback: x\nsamples:\n  - messages:\n      - type: bot\n        content: hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScenario([]byte(tt.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	content := "delay: 10ms\nfallback: Sorry?\nreplies:\n  - keywords: [refund]\n    response: Refunds take 5 days.\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if s.Delay.Milliseconds() != 10 {
		t.Errorf("Delay = %v", s.Delay)
	}
	if got := s.Match("I want a refund").Response; !strings.HasPrefix(got, "Refunds") {
		t.Errorf("Match() = %q", got)
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestScenario_Seed(t *testing.T) {
	s := DefaultScenario()
	if len(s.Samples) == 0 {
		t.Fatal("default scenario has no samples")
	}
	st := NewStore()

	ids := s.Seed(st, 7)

	if len(ids) != len(s.Samples) || st.Len() != len(s.Samples) {
		t.Fatalf("seeded %d sessions, store has %d, want %d", len(ids), st.Len(), len(s.Samples))
	}
	for i, id := range ids {
		sess, ok := st.Get(id)
		if !ok {
			t.Fatalf("session %q missing", id)
		}
		if sess.UserID != 7 {
			t.Errorf("UserID = %d, want 7", sess.UserID)
		}
		if len(sess.Messages) != len(s.Samples[i].Messages) {
			t.Errorf("session %d has %d messages", i, len(sess.Messages))
		}
		if sess.Messages[0].MessageType != TypeUser {
			t.Errorf("first message type = %q", sess.Messages[0].MessageType)
		}
	}
}
