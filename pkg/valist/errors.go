package valist

import "errors"

var (
	// ErrArgsReleased reports an access to an argument list after the
	// invocation that owned it has returned.
	ErrArgsReleased = errors.New("valist: argument list used after release")

	// ErrExhausted is returned when a callback reads past the last value.
	ErrExhausted = errors.New("valist: no more arguments")

	// ErrKindMismatch is returned when the next value does not have the kind
	// the caller asked for.
	ErrKindMismatch = errors.New("valist: argument kind mismatch")

	// ErrBadFormat reports a malformed or unsupported conversion in a format
	// string.
	ErrBadFormat = errors.New("valist: bad format string")
)
