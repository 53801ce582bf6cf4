package cmd

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/calc/cli/cmd/repl"
	"github.com/ardnew/calc/lang"
	"github.com/ardnew/calc/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings are the global options shared by every command.
type Settings struct {
	Engine   lang.Engine
	MaxDepth int

	// Cache is the directory holding the REPL history.
	// If empty, history is not persisted.
	Cache string
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// settingsFrom returns the Settings stored in ctx, or the zero Settings.
func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	return s
}

// options returns the parser options for s. Parse tracing goes to the logger
// carried by ctx.
func (s Settings) options(ctx context.Context) []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(s.MaxDepth),
		lang.WithLogger(log.From(ctx)),
	}
}

// replConfig returns the evaluation settings used by both REPL loops.
func (s Settings) replConfig(ctx context.Context) repl.Config {
	return repl.Config{
		Engine:  s.Engine,
		Options: s.options(ctx),
		Logger:  log.From(ctx),
		History: repl.HistoryPath(s.Cache),
	}
}
