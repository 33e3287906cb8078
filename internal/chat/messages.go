package chat

import "github.com/zhubert/supportchat/internal/api"

// SendResultMsg reports the outcome of a SendMessage command.
type SendResultMsg struct {
	Token    uint64
	Epoch    uint64
	Response *api.ChatResponse
	Err      error
}

// SelectResultMsg reports the outcome of a SelectConversation command.
type SelectResultMsg struct {
	Token    uint64
	Epoch    uint64
	ID       api.SessionID
	Messages []api.Message
	Err      error
}

// DeleteResultMsg reports the outcome of a DeleteConversation command.
type DeleteResultMsg struct {
	Token uint64
	Epoch uint64
	ID    api.SessionID
	Err   error
}

// DirectoryMsg carries one directory fetch.
type DirectoryMsg struct {
	Gen           uint64
	Want          api.SessionID
	Attempt       int
	Conversations []api.ConversationSummary
	Err           error
}

// ReplyMsg is emitted once an assistant reply has been appended.
type ReplyMsg struct {
	Message api.Message
}
