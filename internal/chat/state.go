package chat

import (
	"slices"

	"github.com/zhubert/supportchat/internal/api"
)

// Banner text shown for each failing operation.
const (
	ErrSendFailed   = "Failed to send message. Please try again."
	ErrSelectFailed = "Failed to load conversation"
	ErrDeleteFailed = "Failed to delete conversation"
	ErrReloadFailed = "Failed to load conversation history"
)

// Phase is one of Idle, Sending, Selecting, Deleting or Failed.
type Phase interface {
	phase()
}

// Idle means nothing is in flight and no error is shown.
type Idle struct{}

// Sending means a user message is waiting for its reply.
type Sending struct {
	Token uint64
}

// Selecting means the history of ID is being fetched.
type Selecting struct {
	Token uint64
	ID    api.SessionID
}

// Deleting means a delete of ID is in flight.
type Deleting struct {
	Token uint64
	ID    api.SessionID
}

// Failed carries the banner for the most recent failure.
type Failed struct {
	Message string
}

func (Idle) phase()      {}
func (Sending) phase()   {}
func (Selecting) phase() {}
func (Deleting) phase()  {}
func (Failed) phase()    {}

// State is a read-only snapshot of the controller.
type State struct {
	Messages      []api.Message
	Conversations []api.ConversationSummary
	Active        api.SessionID
	Phase         Phase

	// DirectoryReady is false until the first directory fetch resolves.
	DirectoryReady bool
}

// IsLoading reports whether a reply is pending.
func (s State) IsLoading() bool {
	_, ok := s.Phase.(Sending)
	return ok
}

// Error returns the banner text, or "" when no error is shown.
func (s State) Error() string {
	if f, ok := s.Phase.(Failed); ok {
		return f.Message
	}
	return ""
}

// Busy reports whether a send, select or delete is in flight.
func (s State) Busy() bool {
	switch s.Phase.(type) {
	case Sending, Selecting, Deleting:
		return true
	}
	return false
}

// CanCompose reports whether the composer should accept a submission.
func (s State) CanCompose() bool {
	_, ok := s.Phase.(Idle)
	return ok
}

// Pending reports whether the transcript holds turns of a conversation the
// service has not assigned an id to yet.
func (s State) Pending() bool {
	return s.Active.IsZero() && len(s.Messages) > 0
}

// LastReply returns the content of the newest assistant message.
func (s State) LastReply() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == api.RoleAssistant {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

func (s State) clone() State {
	s.Messages = slices.Clone(s.Messages)
	s.Conversations = slices.Clone(s.Conversations)
	return s
}
