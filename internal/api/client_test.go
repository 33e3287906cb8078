package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zhubert/supportchat/internal/errors"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestSendMessage_NewSession(t *testing.T) {
	var got map[string]any
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if r.Header.Get(RequestIDHeader) == "" {
			t.Error("missing request id header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(`{"response":"Hi there!","session_id":42}`))
	})

	resp, err := client.SendMessage(context.Background(), "Hello", "")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if resp.Response != "Hi there!" {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.SessionID != "42" {
		t.Errorf("SessionID = %q, want 42", resp.SessionID)
	}
	if got["message"] != "Hello" {
		t.Errorf("sent message = %v", got["message"])
	}
	if got["user_id"] != float64(DefaultUserID) {
		t.Errorf("sent user_id = %v", got["user_id"])
	}
	if _, ok := got["session_id"]; ok {
		t.Error("session_id should be omitted for a new conversation")
	}
}

func TestSendMessage_ExistingSession(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.SessionID != "42" {
			t.Errorf("session_id = %q, want 42", req.SessionID)
		}
		if req.UserID != 9 {
			t.Errorf("user_id = %d, want 9", req.UserID)
		}
		w.Write([]byte(`{"response":"ok","session_id":"42"}`))
	})
	client.userID = 9

	if _, err := client.SendMessage(context.Background(), "again", "42"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
}

func TestListSessions(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []SessionID
	}{
		{"wrapped", `{"sessions":[{"id":1,"created_at":"2024-01-15T10:00:00"},{"id":2}]}`, []SessionID{"1", "2"}},
		{"bare array", `[{"session_id":"a"}]`, []SessionID{"a"}},
		{"empty", `{"sessions":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/sessions" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.Write([]byte(tt.body))
			})

			sessions, err := client.ListSessions(context.Background())
			if err != nil {
				t.Fatalf("ListSessions() error = %v", err)
			}
			if sessions == nil {
				t.Fatal("ListSessions() should never return nil on success")
			}
			if len(sessions) != len(tt.want) {
				t.Fatalf("got %d sessions, want %d", len(sessions), len(tt.want))
			}
			for i, id := range tt.want {
				if sessions[i].ID != id {
					t.Errorf("sessions[%d].ID = %q, want %q", i, sessions[i].ID, id)
				}
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/42" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"messages":[
			{"role":"user","content":"Hello","timestamp":"2024-01-15T10:00:00"},
			{"message_type":"assistant","content":"Hi there!","timestamp":"2024-01-15T10:00:01"}
		]}`))
	})

	msgs, err := client.GetSession(context.Background(), "42")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != RoleUser || msgs[1].Role != RoleAssistant {
		t.Errorf("roles = %q, %q", msgs[0].Role, msgs[1].Role)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Session not found"}`, http.StatusNotFound)
	})

	_, err := client.GetSession(context.Background(), "999")
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
	if errors.StatusCode(err) != http.StatusNotFound {
		t.Errorf("StatusCode() = %d", errors.StatusCode(err))
	}
}

func TestDeleteSession(t *testing.T) {
	var method, path string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"message":"Session deleted successfully"}`))
	})

	if err := client.DeleteSession(context.Background(), "42"); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if method != http.MethodDelete || path != "/api/sessions/42" {
		t.Errorf("request = %s %s", method, path)
	}
}

func TestDeleteSession_EscapesID(t *testing.T) {
	var rawPath string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteSession(context.Background(), "a/b"); err != nil {
		t.Fatal(err)
	}
	if rawPath != "/api/sessions/a%2Fb" {
		t.Errorf("escaped path = %q", rawPath)
	}
}

func TestHealth(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy","service":"ecommerce-chatbot"}`))
	})

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !status.Healthy() {
		t.Errorf("status = %+v", status)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind errors.Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantKind: errors.KindService,
		},
		{
			name: "unprocessable",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
			},
			wantKind: errors.KindService,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"response":`))
			},
			wantKind: errors.KindDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, tt.handler)
			_, err := client.SendMessage(context.Background(), "Hello", "")
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("kind = %v, want %v (err: %v)", errors.GetKind(err), tt.wantKind, err)
			}
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).ListSessions(context.Background())
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("expected KindNetwork, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := client.Health(context.Background())
	if !errors.Is(err, errors.KindTimeout) {
		t.Errorf("expected KindTimeout, got %v", err)
	}
}

func TestClient_RequestIDs(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(RequestIDHeader))
		io.WriteString(w, `{"sessions":[]}`)
	}))
	t.Cleanup(srv.Close)

	n := 0
	client := NewClient(srv.URL+"/", WithRequestIDs(func() string {
		n++
		return "req-" + string(rune('0'+n))
	}))
	client.ListSessions(context.Background())
	client.ListSessions(context.Background())

	if len(seen) != 2 || seen[0] != "req-1" || seen[1] != "req-2" {
		t.Errorf("request ids = %v", seen)
	}
	if client.BaseURL() != srv.URL {
		t.Errorf("BaseURL() = %q, trailing slash should be trimmed", client.BaseURL())
	}
}
