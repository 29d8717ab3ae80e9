// Package errs defines the typed error kinds shared by every engine
// component. A bare string error can't be branched on by a caller; a typed
// kind can.
package errs

import (
	"errors"
	"fmt"
)

// Kind distinguishes the engine's error families so callers can branch with
// errors.As instead of string matching.
type Kind int

const (
	// InvalidInput marks a malformed argument: bad cycle syntax, a
	// non-ascending set, a negative degree. Not recoverable by retry.
	InvalidInput Kind = iota
	// OutOfBounds marks a point outside [0, degree).
	OutOfBounds
	// NotSubgroup marks a quotient precondition failure: N is not a
	// subgroup of G.
	NotSubgroup
	// NotDivisor marks |N| not dividing |G|.
	NotDivisor
	// Overflow marks a safety limit exceeded: derived-series depth,
	// lower-central length, Sylow trial/restart budget, quotient index
	// bound.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case OutOfBounds:
		return "out of bounds"
	case NotSubgroup:
		return "not a subgroup"
	case NotDivisor:
		return "not a divisor"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Error is the concrete error type raised by every package in this module.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// New builds an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), err: cause}
}

// Is reports whether err (or something it wraps) is an *Error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
