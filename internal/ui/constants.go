package ui

import "time"

// Layout
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio makes the directory 1/SidebarWidthRatio of the width
	SidebarWidthRatio = 3

	// MinSidebarWidth keeps directory rows readable on narrow terminals
	MinSidebarWidth = 24

	// ComposerHeight is the number of textarea lines in the composer
	ComposerHeight = 3

	// ComposerChromeHeight is the border plus the counter line
	ComposerChromeHeight = 3

	// ComposerTotalHeight is the full height of the composer box
	ComposerTotalHeight = ComposerHeight + ComposerChromeHeight

	// InputPaddingWidth is the horizontal padding inside the composer
	InputPaddingWidth = 2

	// DefaultWrapWidth is used when the feed width is unknown
	DefaultWrapWidth = 80

	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Directory
const (
	// PreviewLength is how many characters of the last message a row previews
	PreviewLength = 50

	// SkeletonRows is how many placeholder rows show while the first load runs
	SkeletonRows = 3
)

// Animation. These are variables so tests can speed them up.
var (
	// TypingTickInterval paces the typing indicator
	TypingTickInterval = 400 * time.Millisecond

	// FlashTickInterval is how often flash messages are checked for expiry
	FlashTickInterval = time.Second

	// CursorBlinkSpeed is the composer cursor blink rate
	CursorBlinkSpeed = 530 * time.Millisecond
)

// Modal dimensions
const (
	ModalWidth          = 60
	ModalInputCharLimit = 256
	ModalInputWidth     = 50
)
