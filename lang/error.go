package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies a syntax error.
type Kind uint8

const (
	KindNone            Kind = iota // none
	KindMalformedNumber             // malformed number
	KindUnbalancedGroup             // unbalanced group
	KindTrailingInput               // trailing input
	KindNestingTooDeep              // nesting too deep
)

func (k Kind) String() string {
	switch k {
	case KindMalformedNumber:
		return "malformed number"
	case KindUnbalancedGroup:
		return "unbalanced group"
	case KindTrailingInput:
		return "trailing input"
	case KindNestingTooDeep:
		return "nesting too deep"
	default:
		return "none"
	}
}

// Messages reported by the parser.
const (
	msgIncorrectNumber = "Incorrect number"
	msgExpectedParen   = "Expected ')'"
	msgExpectedBar     = "Expected '|'"
	msgExtraInput      = "Extra input"
	msgTooDeep         = "Nesting too deep"
)

// Predefined errors (sentinel values).
//
// Errors produced by the parser match these with [errors.Is] according to
// their [Kind], regardless of position or attributes.
var (
	ErrMalformedNumber = newKindError(KindMalformedNumber, msgIncorrectNumber)
	ErrUnbalancedGroup = newKindError(KindUnbalancedGroup, "unbalanced group")
	ErrTrailingInput   = newKindError(KindTrailingInput, msgExtraInput)
	ErrNestingTooDeep  = newKindError(KindNestingTooDeep, msgTooDeep)

	ErrCompile  = NewError("compile expression")
	ErrEvaluate = NewError("evaluate expression")
	ErrReadLine = NewError("read input line")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Syntax errors additionally carry a [Kind] and the 0-based character offset
// at which the violation was detected.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
	kind   Kind
	pos    int
	origin *Error // sentinel this error was derived from
}

// NewError creates a new Error with a message.
//
// Errors derived from it with [Error.Wrap] or [Error.With] still match it
// with [errors.Is].
func NewError(msg string) *Error {
	e := &Error{msg: msg, pos: -1}
	e.origin = e

	return e
}

func newKindError(kind Kind, msg string) *Error {
	e := &Error{msg: msg, kind: kind, pos: -1}
	e.origin = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err, pos: -1}
}

// syntaxError returns a positioned syntax error of the given kind.
func syntaxError(kind Kind, msg string, pos int) *Error {
	return &Error{
		msg:  msg,
		kind: kind,
		pos:  pos,
	}
}

// Error implements the error interface.
//
// Positioned errors read "<msg>, at index <pos>"; otherwise the format is
// "<msg>: <err>", "<msg>", or "<err>" depending on which fields are set.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg
		if e.pos >= 0 {
			msg += ", at index " + strconv.Itoa(e.pos)
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or a
// sentinel of the same syntax error kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if e == t || (e.origin != nil && e.origin == t.origin) {
		return true
	}

	return e.kind != KindNone && e.kind == t.kind && t.pos < 0
}

// Kind returns the syntax error classification, or [KindNone].
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without position or cause.
func (e *Error) Message() string { return e.msg }

// Position returns the character offset of a syntax error, or -1.
func (e *Error) Position() int { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.kind != KindNone {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.pos >= 0 {
		attrs = append(attrs, slog.Int("index", e.pos))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		err:    err,
		attrs:  e.attrs, // Share attrs
		kind:   e.kind,
		pos:    e.pos,
		origin: e.origin,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:    e.msg,
		err:    e.err,
		attrs:  newAttrs,
		kind:   e.kind,
		pos:    e.pos,
		origin: e.origin,
	}
}

// Snippet renders line with a caret marking the error position:
//
//	  | (1+2
//	  |     ^
//
// Line terminators end the rendered line. Tabs before the position are
// preserved in the marker row so the caret aligns in a terminal.
// It returns "" for errors without a position.
func (e *Error) Snippet(line string) string {
	if e.pos < 0 {
		return ""
	}

	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}

	var src, mark strings.Builder

	src.WriteString("  | ")
	mark.WriteString("  | ")

	n := 0
	for _, r := range line {
		src.WriteRune(r)

		if n < e.pos {
			if r == '\t' {
				mark.WriteByte('\t')
			} else {
				mark.WriteByte(' ')
			}
		}

		n++
	}

	// Positions past the end (end of input) still get a marker.
	for ; n < e.pos; n++ {
		mark.WriteByte(' ')
	}

	mark.WriteByte('^')

	return src.String() + "\n" + mark.String()
}
