// Package errs defines the sentinel error values used across the document
// library. Every error raised by heap, wire, finalize, definalize, query and
// the codec front-ends wraps one of these sentinels so callers can classify
// failures with errors.Is regardless of which package raised them.
package errs

import "errors"

// Kind classifies an error into one of a fixed set of error families.
type Kind uint8

const (
	KindType Kind = iota + 1
	KindState
	KindLength
	KindOutOfRange
	KindInvalidArgument
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type_error"
	case KindState:
		return "state_error"
	case KindLength:
		return "length_error"
	case KindOutOfRange:
		return "out_of_range"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindParse:
		return "parse_error"
	default:
		return "unknown_error"
	}
}

var (
	// ErrTypeError is returned when an operation requires a specific value
	// kind (object, array, string, ...) and the receiver is of another kind.
	ErrTypeError = errors.New("type_error: value is not of the required kind")

	// ErrStateError is returned when an operation requires the value to be
	// heap (mutable) or finalized (immutable) and it is in the other state.
	ErrStateError = errors.New("state_error: operation not valid in this representation")

	// ErrLengthError is returned when a finalized region would exceed
	// max_aggregate_size (2^32-1 bytes).
	ErrLengthError = errors.New("length_error: encoded size exceeds maximum aggregate size")

	// ErrOutOfRange is returned by strict indexed accessors (at/at_front/at_back)
	// on empty containers or out-of-bounds indices.
	ErrOutOfRange = errors.New("out_of_range: index out of bounds")

	// ErrInvalidArgument is returned for malformed buffer pointers, odd-length
	// key/value pair spans, or other caller-supplied argument errors.
	ErrInvalidArgument = errors.New("invalid_argument: malformed argument")

	// ErrParseError is returned by the JSON/YAML front-ends on malformed text.
	ErrParseError = errors.New("parse_error: malformed input text")
)

// Error wraps a sentinel with structured context (offending kind, key, index)
// so callers get both errors.Is() classification and a useful message.
type Error struct {
	Kind    Kind
	Sentinel error
	Op      string // operation name, e.g. "Object.Get", "Finalize"
	Key     string // offending object key, if any
	Index   int    // offending array index, if any (-1 if not applicable)
	Detail  string // free-form extra context
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Key != "" {
		msg += " key=" + e.Key
	}
	if e.Index >= 0 {
		msg += " index=" + itoa(e.Index)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg + " (" + e.Sentinel.Error() + ")"
}

func (e *Error) Unwrap() error { return e.Sentinel }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}

// Type builds a *Error wrapping ErrTypeError.
func Type(op, key string, index int, detail string) *Error {
	return &Error{Kind: KindType, Sentinel: ErrTypeError, Op: op, Key: key, Index: index, Detail: detail}
}

// State builds a *Error wrapping ErrStateError.
func State(op, detail string) *Error {
	return &Error{Kind: KindState, Sentinel: ErrStateError, Op: op, Index: -1, Detail: detail}
}

// Length builds a *Error wrapping ErrLengthError.
func Length(op, detail string) *Error {
	return &Error{Kind: KindLength, Sentinel: ErrLengthError, Op: op, Index: -1, Detail: detail}
}

// OutOfRange builds a *Error wrapping ErrOutOfRange.
func OutOfRange(op string, index int) *Error {
	return &Error{Kind: KindOutOfRange, Sentinel: ErrOutOfRange, Op: op, Index: index}
}

// InvalidArgument builds a *Error wrapping ErrInvalidArgument.
func InvalidArgument(op, detail string) *Error {
	return &Error{Kind: KindInvalidArgument, Sentinel: ErrInvalidArgument, Op: op, Index: -1, Detail: detail}
}

// Parse builds a *Error wrapping ErrParseError.
func Parse(op, detail string) *Error {
	return &Error{Kind: KindParse, Sentinel: ErrParseError, Op: op, Index: -1, Detail: detail}
}
