// Package dlerr defines the closed set of error kinds that may surface from
// the download pipeline, plus the translation point that converts arbitrary
// backend failures into that set. No backend-native error type crosses the
// pipeline boundary.
package dlerr

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies one of the taxonomy's error categories.
type Kind int

const (
	// KindUnknown covers any backend failure not otherwise classified.
	KindUnknown Kind = iota
	// KindNetwork marks a transient connectivity or timeout failure;
	// a retry may succeed.
	KindNetwork
	// KindUnavailable marks a source that is permanently inaccessible
	// (removed, private, region-blocked).
	KindUnavailable
	// KindAuth marks a backend demanding credentials we do not supply.
	KindAuth
	// KindFormatNotFound marks a constraint no format satisfies, or a
	// chosen format that vanished between metadata fetch and download.
	KindFormatNotFound
	// KindInvalidRequest marks a malformed request, detected before any
	// provider call.
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindUnavailable:
		return "video unavailable"
	case KindAuth:
		return "authentication required"
	case KindFormatNotFound:
		return "format not found"
	case KindInvalidRequest:
		return "invalid request"
	default:
		return "provider error"
	}
}

// Error is a typed pipeline error: a kind, a human-readable message, and an
// optional remediation hint for the CLI to render.
type Error struct {
	Kind    Kind
	Message string
	Hint    string
	cause   error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithHint attaches a remediation hint and returns the same error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// New builds a taxonomy error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a taxonomy error that records err as its cause. The cause is
// kept for errors.Is/As chains only; rendering uses Message and Hint.
func Wrap(kind Kind, err error, msg string) *Error {
	e := &Error{Kind: kind, Message: msg, cause: err}
	if msg == "" && err != nil {
		e.Message = err.Error()
	}
	return e
}

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnknown, false
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// From is the single translation point at the pipeline boundary. Taxonomy
// errors and context cancellation pass through unchanged; anything else is
// re-expressed as KindUnknown, preserving the original message as diagnostic
// text but never a stack trace.
func From(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Wrap(KindUnknown, err, err.Error())
}
