package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/demo"
)

func startService(t *testing.T) (*demo.Service, *api.Client) {
	t.Helper()
	svc := demo.New(demo.WithoutDelay())
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	return svc, api.NewClient(srv.URL)
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func seed(st *demo.Store, question, answer string) string {
	id := st.Open(1, "")
	st.Append(id, demo.TypeUser, question)
	st.Append(id, demo.TypeAssistant, answer)
	return id
}

func TestListSessions(t *testing.T) {
	svc, client := startService(t)
	first := seed(svc.Store(), "Do you ship abroad?", "Yes, to 40 countries")
	second := seed(svc.Store(), "Is the jacket in stock?", "Only size M")
	cmd, out := testCommand()

	if err := listSessions(cmd, client, time.Now()); err != nil {
		t.Fatalf("listSessions() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], second) || !strings.Contains(lines[0], "Only size M") {
		t.Errorf("first line = %q, want the newest session", lines[0])
	}
	if !strings.Contains(lines[1], first) || !strings.Contains(lines[1], "Just now") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestListSessions_Empty(t *testing.T) {
	_, client := startService(t)
	cmd, out := testCommand()

	if err := listSessions(cmd, client, time.Now()); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "No conversations yet." {
		t.Errorf("output = %q", out.String())
	}
}

func TestShowSession(t *testing.T) {
	svc, client := startService(t)
	id := seed(svc.Store(), "Where is my order?", "On its way")
	cmd, out := testCommand()

	if err := showSession(cmd, client, api.SessionID(id)); err != nil {
		t.Fatalf("showSession() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Session " + id, "[You]", "Where is my order?", "[Assistant]", "On its way"} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Where is my order?") > strings.Index(got, "On its way") {
		t.Error("messages out of order")
	}
}

func TestShowSession_NotFound(t *testing.T) {
	_, client := startService(t)
	cmd, _ := testCommand()

	if err := showSession(cmd, client, "missing"); err == nil {
		t.Error("expected an error for an unknown session")
	}
}

func TestDeleteSession(t *testing.T) {
	tests := []struct {
		name        string
		skip        bool
		input       string
		wantDeleted bool
	}{
		{"confirmed", false, "y\n", true},
		{"declined", false, "n\n", false},
		{"skip confirmation", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origSkip := skipConfirm
			t.Cleanup(func() { skipConfirm = origSkip })
			skipConfirm = tt.skip

			svc, client := startService(t)
			id := seed(svc.Store(), "hi", "hello")
			cmd, out := testCommand()

			if err := deleteSession(cmd, client, api.SessionID(id), strings.NewReader(tt.input)); err != nil {
				t.Fatalf("deleteSession() error = %v", err)
			}

			_, stored := svc.Store().Get(id)
			if stored == tt.wantDeleted {
				t.Errorf("stored = %v, want deleted = %v", stored, tt.wantDeleted)
			}
			if tt.wantDeleted && !strings.Contains(out.String(), "Deleted Session "+id) {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestDeleteSession_Unknown(t *testing.T) {
	origSkip := skipConfirm
	t.Cleanup(func() { skipConfirm = origSkip })
	skipConfirm = true

	_, client := startService(t)
	cmd, _ := testCommand()

	if err := deleteSession(cmd, client, "missing", strings.NewReader("")); err == nil {
		t.Error("expected an error for an unknown session")
	}
}

func TestCheckHealth(t *testing.T) {
	_, client := startService(t)
	var out bytes.Buffer

	if err := checkHealth(context.Background(), client, &out); err != nil {
		t.Fatalf("checkHealth() error = %v", err)
	}
	if !strings.Contains(out.String(), "Status: healthy") || !strings.Contains(out.String(), "chatbot-api") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCheckHealth_Failures(t *testing.T) {
	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "degraded"}`))
	}))
	t.Cleanup(unhealthy.Close)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	tests := []struct {
		name string
		url  string
	}{
		{"unhealthy", unhealthy.URL},
		{"unreachable", closed.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkHealth(context.Background(), api.NewClient(tt.url), &bytes.Buffer{}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
