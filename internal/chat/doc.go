// Package chat owns the client-side conversation state and every transition
// that mutates it.
//
// # Overview
//
// A Controller holds the transcript of the active (or pending) conversation,
// the directory of persisted sessions, the active session id and the current
// Phase. The UI reads a State snapshot and calls the Controller's operations;
// it never mutates state itself.
//
// # Phases
//
// Phase is a closed set of variants:
//
//   - Idle: nothing in flight, no error shown
//   - Sending: a message is waiting for the assistant's reply
//   - Selecting: a persisted session's history is being fetched
//   - Deleting: a session delete is in flight
//   - Failed: the last operation failed; carries the banner text
//
// Loading and error are derived from the phase, so they can never be set at
// the same time.
//
// # Operations
//
// Operations that talk to the service return a tea.Cmd. The command performs
// the remote call off the UI goroutine and reports back with a result message
// that must be fed to Update. Only one of send, select and delete may be in
// flight at a time; a second request while busy is ignored.
//
// Every in-flight operation carries a token and the navigation epoch it was
// issued under. StartNewConversation bumps the epoch, so a reply that arrives
// after the user moved on is dropped instead of leaking into the new
// conversation.
//
// # Directory reloads
//
// The directory is replaced wholesale on every fetch. After a send binds a
// new session id, the directory is re-fetched until that id appears or the
// configured attempts run out.
package chat
