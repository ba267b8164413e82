package wts

import "fmt"

// ErrKind classifies the recoverable-vs-fatal error conditions spec.md §7
// describes.
type ErrKind int

const (
	// ErrMalformedDOM covers structural DOM problems the walker can skip
	// past (an element missing an expected child) without aborting.
	ErrMalformedDOM ErrKind = iota
	// ErrUnknownTypeOf covers a rel/typeof value none of the meta/span/link
	// handlers recognize.
	ErrUnknownTypeOf
	// ErrUnknownElement covers an element name with no registered handler
	// and no "html" stx override, serialized via the generic fallback.
	ErrUnknownElement
	// ErrHandlerResult covers a handler returning something that could not
	// be coerced to a string (not applicable to this Go port's
	// string-returning Handle signature, kept for symmetry with the
	// policy's enumeration).
	ErrHandlerResult
	// ErrSeparatorAnomaly covers a DSR-based splice that failed its
	// sanity check and fell back to handler-driven newlines.
	ErrSeparatorAnomaly
	// ErrFatal covers anything that aborts the serialize call entirely.
	ErrFatal
)

func (k ErrKind) String() string {
	switch k {
	case ErrMalformedDOM:
		return "malformed-dom"
	case ErrUnknownTypeOf:
		return "unknown-typeof"
	case ErrUnknownElement:
		return "unknown-element"
	case ErrHandlerResult:
		return "handler-result"
	case ErrSeparatorAnomaly:
		return "separator-anomaly"
	case ErrFatal:
		return "fatal"
	}
	return "unknown"
}

// SerializeError is the error type passed to Env.ErrCB and returned from
// Serialize for fatal conditions.
type SerializeError struct {
	Kind ErrKind
	Msg  string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("wts: %s: %s", e.Kind, e.Msg)
}

func newSerializeError(kind ErrKind, format string, args ...interface{}) *SerializeError {
	return &SerializeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// recoverable reports conditions spec.md §7 says should log a warning via
// Options.Logger and continue rather than abort the serialize call.
func (k ErrKind) recoverable() bool {
	return k != ErrFatal
}

func (s *State) reportError(opts *Options, kind ErrKind, format string, args ...interface{}) {
	err := newSerializeError(kind, format, args...)
	opts.logger().WithField("kind", kind.String()).Warn(err.Error())
	if !kind.recoverable() && opts.Env.ErrCB != nil {
		opts.Env.ErrCB(err)
	}
}
