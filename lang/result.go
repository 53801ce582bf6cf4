package lang

import "log/slog"

// State identifies which variant of a [Result] is active.
type State uint8

const (
	StateAbsent  State = iota // absent
	StatePresent              // present
	StateError                // error
)

func (s State) String() string {
	switch s {
	case StatePresent:
		return "present"
	case StateError:
		return "error"
	default:
		return "absent"
	}
}

// Result is the outcome of a parse step: a present expression, the absence
// of anything to parse, or a positioned syntax error.
//
// The zero value is Absent.
type Result struct {
	expr  *Expr
	err   *Error
	state State
}

// Present returns a Result holding e.
func Present(e *Expr) Result { return Result{state: StatePresent, expr: e} }

// Absent returns a Result signaling that nothing was matched.
func Absent() Result { return Result{} }

// Failed returns a Result holding err.
func Failed(err *Error) Result { return Result{state: StateError, err: err} }

// State returns the active variant.
func (r Result) State() State { return r.state }

func (r Result) IsPresent() bool { return r.state == StatePresent }
func (r Result) IsAbsent() bool  { return r.state == StateAbsent }
func (r Result) IsError() bool   { return r.state == StateError }

// Expr returns the expression and true if r is present.
func (r Result) Expr() (*Expr, bool) { return r.expr, r.state == StatePresent }

// Err returns the syntax error, or nil unless r is an error.
func (r Result) Err() *Error {
	if r.state != StateError {
		return nil
	}

	return r.err
}

// Message returns the error message, or "" unless r is an error.
func (r Result) Message() string {
	if r.state != StateError {
		return ""
	}

	return r.err.Message()
}

// Position returns the error position, or -1 unless r is an error.
func (r Result) Position() int {
	if r.state != StateError {
		return -1
	}

	return r.err.Position()
}

// Map replaces a present expression with fn applied to it.
// Absent and error results are returned unchanged.
func (r Result) Map(fn func(*Expr) *Expr) Result {
	if r.state != StatePresent {
		return r
	}

	return Present(fn(r.expr))
}

// Then replaces a present result with the result of fn applied to its
// expression. Absent and error results are returned unchanged.
func (r Result) Then(fn func(*Expr) Result) Result {
	if r.state != StatePresent {
		return r
	}

	return fn(r.expr)
}

// LogValue implements [slog.LogValuer].
func (r Result) LogValue() slog.Value {
	switch r.state {
	case StatePresent:
		return slog.GroupValue(
			slog.String("state", r.state.String()),
			slog.Any("expr", r.expr),
		)
	case StateError:
		return slog.GroupValue(
			slog.String("state", r.state.String()),
			slog.Any("error", r.err),
		)
	default:
		return slog.GroupValue(slog.String("state", r.state.String()))
	}
}
