// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/rivo/uniseg"
	"github.com/zhubert/supportchat/internal/logger"
)

// Title is shown on every notification.
const Title = "Customer Support"

// maxBodyLength caps the reply excerpt in characters.
const maxBodyLength = 80

type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title)
	// empty icon lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("notification failed", "error", err)
	}
	return err
}

// ReplyReceived announces an assistant reply, quoting its start.
func ReplyReceived(reply string) error {
	return Send(Title, Excerpt(reply, maxBodyLength))
}

// Excerpt returns the first n characters of s with an ellipsis when cut.
func Excerpt(s string, n int) string {
	var out []byte
	g := uniseg.NewGraphemes(s)
	for i := 0; g.Next(); i++ {
		if i == n {
			return string(out) + "…"
		}
		out = append(out, g.Bytes()...)
	}
	return string(out)
}
