package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/ardnew/calc/cli/cmd/repl"
	"github.com/ardnew/calc/lang"
	"github.com/ardnew/calc/log"
)

// Eval evaluates expressions given as arguments or read from files.
//
// Unlike the REPL, evaluation does not stop at a blank line: every line
// yields a record.
type Eval struct {
	Exprs  []string `arg:"" help:"Expressions to evaluate"                                name:"expr"    optional:""`
	Files  []string `       help:"Read expressions from file(s), one per line, or '-' for stdin" name:"file"    placeholder:"FILE" short:"f"`
	Output string   `       help:"Output format"                                          default:"text" enum:"text,json,yaml" short:"o"`

	stdin  io.Reader
	stdout io.Writer
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdin, stdout := e.stdin, e.stdout
	if stdin == nil {
		stdin = os.Stdin
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	w, err := newRecordWriter(e.Output, stdout)
	if err != nil {
		return err
	}

	files := e.Files
	if len(e.Exprs) == 0 && len(files) == 0 {
		files = []string{stdinSource}
	}

	srcs, err := openSources(files, stdin)
	if err != nil {
		return err
	}
	defer srcs.Close()

	cfg := settingsFrom(ctx).replConfig(ctx)

	var total, failed int

	for rec, err := range e.records(ctx, cfg, srcs) {
		if err != nil {
			return err
		}

		total++

		if rec.Failed() {
			failed++
		}

		if err := w.Write(ctx, rec); err != nil {
			return err
		}
	}

	log.From(ctx).DebugContext(ctx, "eval complete",
		slog.Int("lines", total),
		slog.Int("failed", failed),
		slog.String("engine", cfg.Engine.String()),
	)

	if failed > 0 {
		return ErrEvaluate.With(
			slog.Int("failed", failed),
			slog.Int("lines", total),
		)
	}

	return nil
}

// records evaluates the argument expressions, then every line of srcs.
// A read failure ends the sequence with an error.
func (e *Eval) records(
	ctx context.Context,
	cfg repl.Config,
	srcs sources,
) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for i, expr := range e.Exprs {
			if !yield(newRecord("", i+1, cfg.Evaluate(ctx, expr)), nil) {
				return
			}
		}

		for _, src := range srcs {
			for line, res := range lang.ParseReader(ctx, src, cfg.Options...) {
				if err := res.Err(); err != nil && errors.Is(err, lang.ErrReadLine) {
					yield(Record{}, err.With(slog.String("file", src.name)))

					return
				}

				out := cfg.Complete(ctx, line.Text, res)
				if !yield(newRecord(src.name, line.Number, out), nil) {
					return
				}
			}
		}
	}
}
