package repl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/calc/lang"
	"github.com/ardnew/calc/log"
)

// Reply prefixes and the farewell printed when a line is absent.
const (
	PromptPrefix = ">>> "
	ResultPrefix = "<<< "
	ErrorPrefix  = "!!! "
	Farewell     = "Goodbye"
)

// Config holds the settings shared by the interactive and plain loops.
type Config struct {
	Engine  lang.Engine
	Options []lang.Option
	Logger  log.Logger

	// History is the path of the persistent history file.
	// If empty, history is kept in memory only.
	History string
}

// Outcome is the evaluation of one input line.
type Outcome struct {
	Input  string
	Result lang.Result
	Value  float64
	Err    error // engine failure; only the vm engine can fail
}

// Evaluate parses line and, if an expression is present, evaluates it with
// the configured engine.
func (c Config) Evaluate(ctx context.Context, line string) Outcome {
	return c.Complete(ctx, line, lang.Parse(ctx, line, c.Options...))
}

// Complete evaluates res, the parse result of line, with the configured
// engine.
func (c Config) Complete(ctx context.Context, line string, res lang.Result) Outcome {
	out := Outcome{Input: line, Result: res}

	if e, ok := res.Expr(); ok {
		out.Value, out.Err = c.Engine.Evaluate(e)
	}

	c.Logger.TraceContext(ctx, "line evaluated",
		slog.String("engine", c.Engine.String()),
		slog.Any("result", res),
	)

	if out.Err != nil {
		c.Logger.WarnContext(ctx, "engine failure",
			slog.Any("error", out.Err),
			slog.String("input", line),
		)
	}

	return out
}

// Absent reports whether the line held no expression.
func (o Outcome) Absent() bool { return o.Result.IsAbsent() }

// Failed reports whether the line could not be parsed or evaluated.
func (o Outcome) Failed() bool { return o.Result.IsError() || o.Err != nil }

// Reply returns the line printed in response to o.
func (o Outcome) Reply() string {
	switch {
	case o.Result.IsError():
		return fmt.Sprintf("%s%s, at index %d",
			ErrorPrefix, o.Result.Message(), o.Result.Position())
	case o.Err != nil:
		return ErrorPrefix + o.Err.Error()
	case o.Absent():
		return Farewell
	default:
		return ResultPrefix + FormatValue(o.Value)
	}
}

// FormatValue renders v with the shortest representation that round-trips.
func FormatValue(v float64) string {
	return fmt.Sprint(v)
}

// Snippet returns the caret snippet for a parse error, or "" otherwise.
func (o Outcome) Snippet() string {
	if err := o.Result.Err(); err != nil {
		return err.Snippet(o.Input)
	}

	return ""
}
