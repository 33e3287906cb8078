// Package clipboard copies text to and from the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/supportchat/internal/logger"
)

// Backend is the system clipboard.
type Backend interface {
	Init() error
	Read() []byte
	Write(data []byte)
}

type systemBackend struct{}

func (systemBackend) Init() error       { return clipboard.Init() }
func (systemBackend) Read() []byte      { return clipboard.Read(clipboard.FmtText) }
func (systemBackend) Write(data []byte) { clipboard.Write(clipboard.FmtText, data) }

var (
	mu          sync.Mutex
	backend     Backend = systemBackend{}
	initialized bool
	initErr     error
)

// SetBackend replaces the clipboard backend and forgets prior initialization.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	backend = b
	initialized = false
	initErr = nil
}

// ResetBackend restores the system clipboard.
func ResetBackend() {
	SetBackend(systemBackend{})
}

// Init initializes the clipboard. This is safe to call multiple times; a
// failure is remembered so headless sessions do not retry on every copy.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return initErr
	}
	initialized = true
	if err := backend.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("clipboard unavailable", "error", err)
		initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	return initErr
}

// WriteText copies text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	backend.Write([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(backend.Read()), nil
}
