// Package api is the client for the remote chat service. It performs every
// call exactly once, without retries or caching, and reports failures as
// structured errors from internal/errors.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SessionID is the opaque identifier the service mints for a conversation.
// The service may send it as a JSON number or string; the zero value means
// no session is bound yet.
type SessionID string

// IsZero reports whether no session is identified.
func (id SessionID) IsZero() bool {
	return id == ""
}

func (id SessionID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a string, a number or null.
func (id *SessionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SessionID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("session id must be a string or number, got %s", data)
	}
	*id = SessionID(n.String())
	return nil
}

// Message is one turn of a conversation.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // ISO-8601
}

// UnmarshalJSON also accepts the "message_type" spelling of the role field.
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire struct {
		Role        Role   `json:"role"`
		MessageType Role   `json:"message_type"`
		Content     string `json:"content"`
		Timestamp   string `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.Role = wire.Role
	if m.Role == "" {
		m.Role = wire.MessageType
	}
	m.Content = wire.Content
	m.Timestamp = wire.Timestamp
	return nil
}

// NewMessage stamps a message with the current time.
func NewMessage(role Role, content string, now time.Time) Message {
	return Message{Role: role, Content: content, Timestamp: now.UTC().Format(time.RFC3339Nano)}
}

// ConversationSummary is a persisted session as listed by the service.
// Messages may be absent or partial; it is only used for previews.
type ConversationSummary struct {
	ID        SessionID `json:"id"`
	CreatedAt string    `json:"created_at"`
	Messages  []Message `json:"messages,omitempty"`
}

// UnmarshalJSON prefers "session_id" over "id" when both are present, so the
// summary carries the same identifier that POST /api/chat returns.
func (c *ConversationSummary) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        SessionID `json:"id"`
		SessionID SessionID `json:"session_id"`
		CreatedAt string    `json:"created_at"`
		Messages  []Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.ID = wire.ID
	if !wire.SessionID.IsZero() {
		c.ID = wire.SessionID
	}
	c.CreatedAt = wire.CreatedAt
	c.Messages = wire.Messages
	return nil
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string    `json:"message"`
	UserID    int       `json:"user_id"`
	SessionID SessionID `json:"session_id,omitempty"`
}

// ChatResponse is the answer to POST /api/chat.
type ChatResponse struct {
	Response  string    `json:"response"`
	SessionID SessionID `json:"session_id"`
}

// SessionList is the body of GET /api/sessions.
type SessionList struct {
	Sessions []ConversationSummary `json:"sessions"`
}

// UnmarshalJSON accepts both {"sessions": [...]} and a bare array.
func (l *SessionList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Sessions)
	}
	var wire struct {
		Sessions []ConversationSummary `json:"sessions"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	l.Sessions = wire.Sessions
	return nil
}

// SessionDetail is the body of GET /api/sessions/{id}.
type SessionDetail struct {
	Messages []Message `json:"messages"`
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// Healthy reports whether the service described itself as healthy.
func (h HealthStatus) Healthy() bool {
	s := strings.ToLower(h.Status)
	return s == "healthy" || s == "ok"
}

// timestampLayouts are tried in order. Layouts without a zone are read in
// local time, the way a browser reads them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 variants the service emits.
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	for i, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, ts)
		} else {
			t, err = time.ParseInLocation(layout, ts, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", ts)
}

// FormatTimestamp renders ts as a local date and time, e.g. "1/15/2024, 10:30:00 AM".
// Empty input renders empty; unparseable input is returned unchanged.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("1/2/2006, 3:04:05 PM")
}
