package ui

import (
	"sync"

	"github.com/zhubert/supportchat/internal/logger"
)

// ViewContext holds the layout calculations shared by every panel.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	sidebarHidden bool
	mu            sync.Mutex
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions for a new terminal size.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.TerminalWidth = max(width, MinTerminalWidth)
	v.TerminalHeight = max(height, MinTerminalHeight)
	v.recalculate()
}

// SetSidebarHidden collapses or restores the directory panel.
func (v *ViewContext) SetSidebarHidden(hidden bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sidebarHidden = hidden
	v.recalculate()
}

// SidebarHidden reports whether the directory panel is collapsed.
func (v *ViewContext) SidebarHidden() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sidebarHidden
}

func (v *ViewContext) recalculate() {
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = v.TerminalHeight - v.HeaderHeight - v.FooterHeight

	if v.sidebarHidden {
		v.SidebarWidth = 0
	} else {
		v.SidebarWidth = max(v.TerminalWidth/SidebarWidthRatio, MinSidebarWidth)
	}
	v.ChatWidth = v.TerminalWidth - v.SidebarWidth

	logger.WithComponent("ui").Debug("layout updated",
		"width", v.TerminalWidth,
		"height", v.TerminalHeight,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
