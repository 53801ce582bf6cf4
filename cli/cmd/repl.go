package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/calc/cli/cmd/repl"
	"github.com/ardnew/calc/log"
)

// Repl reads expressions interactively until a line holds none.
type Repl struct {
	Plain bool `help:"Use the line-oriented loop even on a terminal"`

	stdin  io.Reader
	stdout io.Writer
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg := settingsFrom(ctx).replConfig(ctx)

	stdin, stdout := r.stdin, r.stdout
	if stdin == nil {
		stdin = os.Stdin
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	interactive := !r.Plain && isTerminal(stdin) && isTerminal(stdout)

	log.From(ctx).DebugContext(ctx, "repl",
		slog.Bool("interactive", interactive),
		slog.String("engine", cfg.Engine.String()),
	)

	if interactive {
		return repl.Run(ctx, cfg)
	}

	return repl.RunPlain(ctx, stdin, stdout, cfg)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
