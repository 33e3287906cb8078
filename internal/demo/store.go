package demo

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// naiveTimestamp is how the service writes times: local wall clock with
// microseconds and no zone.
const naiveTimestamp = "2006-01-02T15:04:05.000000"

// Message types stored per row.
const (
	TypeUser      = "user"
	TypeAssistant = "assistant"
)

type storedMessage struct {
	id          int
	messageType string
	content     string
	timestamp   time.Time
}

type storedSession struct {
	id        int
	userID    int
	sessionID string
	createdAt time.Time
	messages  []storedMessage
}

// SessionView is the wire form of a session.
type SessionView struct {
	ID        int           `json:"id"`
	UserID    int           `json:"user_id"`
	SessionID string        `json:"session_id"`
	CreatedAt string        `json:"created_at"`
	IsActive  bool          `json:"is_active"`
	Messages  []MessageView `json:"messages"`
}

// MessageView is the wire form of a stored message. SessionID is the
// numeric row id of the owning session.
type MessageView struct {
	ID          int    `json:"id"`
	SessionID   int    `json:"session_id"`
	MessageType string `json:"message_type"`
	Content     string `json:"content"`
	Timestamp   string `json:"timestamp"`
}

// Store keeps sessions in memory. It is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*storedSession
	nextSession int
	nextMessage int

	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*storedSession),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Open returns sessionID when it exists, otherwise a new session for userID.
func (s *Store) Open(userID int, sessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok && sessionID != "" {
		return sessionID
	}
	if userID <= 0 {
		userID = 1
	}
	s.nextSession++
	sess := &storedSession{
		id:        s.nextSession,
		userID:    userID,
		sessionID: s.newID(),
		createdAt: s.now(),
	}
	s.sessions[sess.sessionID] = sess
	return sess.sessionID
}

// Append adds a message and returns its id, or false for an unknown session.
func (s *Store) Append(sessionID, messageType, content string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, false
	}
	s.nextMessage++
	sess.messages = append(sess.messages, storedMessage{
		id:          s.nextMessage,
		messageType: messageType,
		content:     content,
		timestamp:   s.now(),
	})
	return s.nextMessage, true
}

// Get returns one session.
func (s *Store) Get(sessionID string) (SessionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, false
	}
	return sess.view(), true
}

// List returns up to limit sessions, newest first. A userID of zero lists
// every user's sessions.
func (s *Store) List(userID, limit int) []SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*storedSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if userID == 0 || sess.userID == userID {
			matched = append(matched, sess)
		}
	}
	slices.SortFunc(matched, func(a, b *storedSession) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]SessionView, len(matched))
	for i, sess := range matched {
		out[i] = sess.view()
	}
	return out
}

// Delete removes a session and its messages.
func (s *Store) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (sess *storedSession) view() SessionView {
	msgs := make([]MessageView, len(sess.messages))
	for i, m := range sess.messages {
		msgs[i] = MessageView{
			ID:          m.id,
			SessionID:   sess.id,
			MessageType: m.messageType,
			Content:     m.content,
			Timestamp:   m.timestamp.Local().Format(naiveTimestamp),
		}
	}
	return SessionView{
		ID:        sess.id,
		UserID:    sess.userID,
		SessionID: sess.sessionID,
		CreatedAt: sess.createdAt.Local().Format(naiveTimestamp),
		IsActive:  true,
		Messages:  msgs,
	}
}
