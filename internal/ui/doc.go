// Package ui provides the visual components of the support chat TUI.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │ Error banner (when shown)         │
//	│  Directory      │ Feed                              │
//	│  (1/3 width)    │                                   │
//	│                 ├───────────────────────────────────┤
//	│                 │ Composer                          │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// The directory can be hidden, in which case the chat column takes the full
// width.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: The application title, the active conversation and service health
// over a gradient background.
//
// Directory: Lists persisted conversations with a preview of the last
// message and how long ago the conversation started. Enter opens a
// conversation, d deletes it.
//
// Feed: The transcript in a scrolling viewport. Assistant replies are rendered
// as light markdown with highlighted code blocks. A typing indicator is shown
// while a send is outstanding, and a welcome message when the transcript is
// empty.
//
// Composer: A textarea bound to the message length limit. Enter submits a
// validated draft; shift+enter inserts a newline.
//
// Footer: Context-aware key bindings, replaced by flash messages for a short
// time after actions such as copying a reply.
//
// Modal: A single dialog at a time: delete confirmation, settings and help.
// Dialog states live in the modals subpackage.
//
// None of the components call the chat service. They render state handed to
// them and emit messages such as SubmitMsg or SelectConversationMsg for the
// app layer to act on.
//
// # Styles
//
// Styles are defined in styles.go and rebuilt from the active theme by
// SetTheme. Components read the package-level style variables at render time.
package ui
