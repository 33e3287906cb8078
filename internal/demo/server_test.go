package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/supportchat/internal/api"
	"github.com/zhubert/supportchat/internal/errors"
)

func newTestServer(t *testing.T, opts ...Option) (*Service, *api.Client) {
	t.Helper()
	svc := New(append([]Option{WithoutDelay()}, opts...)...)
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	return svc, api.NewClient(srv.URL, api.WithTimeout(5*time.Second))
}

func TestService_ConversationLifecycle(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	resp, err := client.SendMessage(ctx, "hello", "")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if resp.SessionID.IsZero() {
		t.Fatal("a new conversation should be given a session id")
	}
	if !strings.HasPrefix(resp.Response, "Hi there!") {
		t.Errorf("response = %q", resp.Response)
	}

	again, err := client.SendMessage(ctx, "where is my order", resp.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if again.SessionID != resp.SessionID {
		t.Errorf("follow-up moved to session %q", again.SessionID)
	}

	list, err := client.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != resp.SessionID {
		t.Fatalf("ListSessions() = %+v, want the bound session", list)
	}
	if len(list[0].Messages) != 4 {
		t.Errorf("listed %d messages, want 4", len(list[0].Messages))
	}

	msgs, err := client.GetSession(ctx, resp.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	wantRoles := []api.Role{api.RoleUser, api.RoleAssistant, api.RoleUser, api.RoleAssistant}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, wantRoles[i])
		}
		if _, err := api.ParseTimestamp(m.Timestamp); err != nil {
			t.Errorf("message %d timestamp %q does not parse: %v", i, m.Timestamp, err)
		}
	}

	if err := client.DeleteSession(ctx, resp.SessionID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := client.GetSession(ctx, resp.SessionID); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("GetSession() after delete = %v, want not found", err)
	}
	if err := client.DeleteSession(ctx, resp.SessionID); !errors.Is(err, errors.KindNotFound) {
		t.Errorf("second DeleteSession() = %v, want not found", err)
	}
}

func TestService_UnknownSessionStartsNewOne(t *testing.T) {
	svc, client := newTestServer(t)

	resp, err := client.SendMessage(context.Background(), "hello", "no-such-session")
	if err != nil {
		t.Fatal(err)
	}
	if resp.SessionID == "no-such-session" {
		t.Error("unknown session ids should not be adopted")
	}
	if svc.Store().Len() != 1 {
		t.Errorf("store has %d sessions, want 1", svc.Store().Len())
	}
}

func TestService_ScriptedFailure(t *testing.T) {
	svc, client := newTestServer(t)

	_, err := client.SendMessage(context.Background(), "simulate an outage", "")
	if !errors.Is(err, errors.KindService) || errors.StatusCode(err) != http.StatusInternalServerError {
		t.Errorf("SendMessage() error = %v, want a 500 service error", err)
	}
	if svc.Store().Len() != 0 {
		t.Error("a failed exchange should not create a session")
	}
}

func TestService_Health(t *testing.T) {
	_, client := newTestServer(t)

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !status.Healthy() || status.Service != "chatbot-api" {
		t.Errorf("Health() = %+v", status)
	}
}

func TestService_RawAPI(t *testing.T) {
	svc := New(WithoutDelay())
	router := svc.Handler()
	for i := 0; i < 12; i++ {
		svc.Store().Open(1+i%2, "")
	}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantCount  int
	}{
		{"default limit", http.MethodGet, "/api/sessions", "", http.StatusOK, DefaultListLimit},
		{"explicit limit", http.MethodGet, "/api/sessions?limit=3", "", http.StatusOK, 3},
		{"user filter", http.MethodGet, "/api/sessions?user_id=2&limit=50", "", http.StatusOK, 6},
		{"bad limit", http.MethodGet, "/api/sessions?limit=lots", "", http.StatusUnprocessableEntity, -1},
		{"empty message", http.MethodPost, "/api/chat", `{"message":"  "}`, http.StatusUnprocessableEntity, -1},
		{"malformed body", http.MethodPost, "/api/chat", `{`, http.StatusUnprocessableEntity, -1},
		{"unknown session", http.MethodGet, "/api/sessions/nope", "", http.StatusNotFound, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantCount < 0 {
				return
			}
			var sessions []SessionView
			if err := json.Unmarshal(rec.Body.Bytes(), &sessions); err != nil {
				t.Fatalf("body is not a bare array: %v", err)
			}
			if len(sessions) != tt.wantCount {
				t.Errorf("got %d sessions, want %d", len(sessions), tt.wantCount)
			}
		})
	}
}

func TestListen_ServeAndShutdown(t *testing.T) {
	srv, err := Listen("127.0.0.1:0", New(WithoutDelay()))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, nil) }()

	client := api.NewClient(srv.URL(), api.WithTimeout(5*time.Second))
	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
