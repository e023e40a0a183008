package card

import (
	"errors"
	"fmt"
)

// Kind classifies card failures for logging and inline display.
type Kind string

const (
	// KindConfigMissing marks an optional integration that is not
	// configured. Not an error condition; logged informationally.
	KindConfigMissing Kind = "config_missing"

	// KindFetch covers network errors, timeouts and non-2xx responses.
	KindFetch Kind = "fetch"

	// KindParse covers malformed feed payloads.
	KindParse Kind = "parse"

	// KindRender marks a lifecycle-ordering bug (update before compose).
	// Surfaced in logs, never as user-facing card content.
	KindRender Kind = "render"
)

// Error wraps a card failure with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errf builds a kinded error from a format string.
func Errf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// WrapErr attaches a kind to err. Returns nil when err is nil; an already
// kinded error keeps its original kind.
func WrapErr(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the failure kind from err, defaulting to KindFetch for
// unclassified errors (the common case at the card boundary).
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindFetch
}
