// Package berr defines the sentinel error taxonomy shared by every layer of
// blockkv, from block storage up through the typed table. Callers classify
// errors with errors.Is against the sentinels below; implementations wrap a
// sentinel with context via Wrap rather than inventing new error types.
package berr

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a read or write falls outside the
	// valid range for the target (a cursor, a view, a paged table, or a
	// typed table).
	ErrIndexOutOfRange = errors.New("blockkv: index out of range")

	// ErrInvalidArgument is returned for malformed caller input: a
	// non-positive block size, a fixed-size array written with the wrong
	// length, a double close, and similar misuse.
	ErrInvalidArgument = errors.New("blockkv: invalid argument")

	// ErrNotFound is returned when a named container does not exist.
	ErrNotFound = errors.New("blockkv: not found")

	// ErrAlreadyExists is returned when creating a container that already
	// exists, or when a lock held by another process prevents opening one.
	ErrAlreadyExists = errors.New("blockkv: already exists")

	// ErrCorrupted is returned when a container file doesn't match the
	// expected layout, such as a header shorter than the block-size prefix.
	// Malformed record bytes (a missing structural indicator, a non-digit
	// where a digit was expected) are reported as ErrDecode instead.
	ErrCorrupted = errors.New("blockkv: corrupted")

	// ErrClosed is returned by any operation attempted on a closed handle.
	ErrClosed = errors.New("blockkv: closed")

	// ErrDecode is returned when the encoding layer fails to parse a byte
	// stream into a value (distinct from ErrCorrupted, which is reserved
	// for structural/container-level mismatches).
	ErrDecode = errors.New("blockkv: decode")
)

// Wrap formats a message and wraps sentinel so errors.Is matches it. It
// chains no underlying cause; use WrapErr for that.
func Wrap(sentinel error, format string, args ...any) error {
	return &wrapped{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

// WrapErr is like Wrap but also chains an underlying cause, so
// errors.Is(err, sentinel) and errors.Is(err, cause) both hold.
func WrapErr(sentinel, cause error, format string, args ...any) error {
	return &wrapped{sentinel: sentinel, cause: cause, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	sentinel error
	cause    error
	msg      string
}

func (w *wrapped) Error() string {
	if w.cause != nil {
		return w.msg + ": " + w.cause.Error()
	}
	return w.msg
}

func (w *wrapped) Unwrap() []error {
	if w.cause != nil {
		return []error{w.sentinel, w.cause}
	}
	return []error{w.sentinel}
}
