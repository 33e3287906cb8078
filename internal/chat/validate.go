package chat

import (
	"strings"
	"unicode/utf8"

	"github.com/zhubert/supportchat/internal/errors"
)

// MaxMessageLength is the longest draft the composer accepts, in characters.
const MaxMessageLength = 1000

// ValidateDraft trims text and checks it can be sent.
func ValidateDraft(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", errors.EmptyMessage()
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxMessageLength {
		return "", errors.MessageTooLong(n, MaxMessageLength)
	}
	return trimmed, nil
}
