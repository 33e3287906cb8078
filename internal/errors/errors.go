// Package errors provides structured error types for the support chat client.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindNetwork
	KindService
	KindDecode
	KindConfig
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindNetwork:
		return "network error"
	case KindService:
		return "service error"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for the client.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Status  int    // HTTP status code, when the remote service answered
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Input errors

func EmptyMessage() error {
	return E(Op("chat.Send"), KindValidation, "message is empty")
}

func MessageTooLong(length, limit int) error {
	return E(Op("chat.Send"), KindValidation, fmt.Sprintf("message is %d characters, limit is %d", length, limit))
}

// Remote service errors

// ServiceStatus builds the error for a non-2xx answer. A 404 is reported as
// KindNotFound so callers can tell an unknown session apart from a broken service.
func ServiceStatus(op Op, status int, body string) error {
	kind := KindService
	if status == 404 {
		kind = KindNotFound
	}
	ctx := fmt.Sprintf("unexpected status %d", status)
	if body != "" {
		ctx += ": " + body
	}
	return &Error{Op: op, Kind: kind, Status: status, Err: errors.New(ctx)}
}

func NetworkFailed(op Op, err error) error {
	return E(op, KindNetwork, err)
}

func RequestTimedOut(op Op, err error) error {
	return E(op, KindTimeout, "request timed out", err)
}

func DecodeFailed(op Op, err error) error {
	return E(op, KindDecode, "malformed response body", err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}
