package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/calc/lang"
)

// RunPlain runs the line-oriented loop: print the prompt, read a line, and
// reply, until a line holds no expression.
//
// End of input reads as an empty line, so the loop always ends with the
// farewell unless reading fails or ctx is cancelled.
func RunPlain(ctx context.Context, r io.Reader, w io.Writer, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg.Logger.TraceContext(ctx, "plain loop start",
		slog.String("engine", cfg.Engine.String()),
	)

	in := bufio.NewReader(r)

	for n := 1; ; n++ {
		if _, err := io.WriteString(w, PromptPrefix); err != nil {
			return err
		}

		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return lang.ErrReadLine.Wrap(err).With(slog.Int("line", n))
		}

		if cause := context.Cause(ctx); cause != nil {
			return cause
		}

		out := cfg.Evaluate(ctx, line)

		if _, err := fmt.Fprintln(w, out.Reply()); err != nil {
			return err
		}

		if out.Absent() {
			cfg.Logger.TraceContext(ctx, "plain loop end", slog.Int("lines", n))

			return nil
		}
	}
}
