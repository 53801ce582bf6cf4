// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("application started", slog.String("version", "1.0.0"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// A configured [Logger] is never modified in place. [Logger.Wrap] returns a
// new Logger with further options applied, and [Config] does the same for
// the package-level default logger.
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The
// context-unaware forms use [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// A Logger can also travel with a context:
//
//	ctx = log.Into(ctx, logger)
//	log.From(ctx).Debug("inside handler")
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Trace sits below slog's debug level and is reported as "TRACE".
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled
// (default), records are colorized using lipgloss styles bound to the output,
// so plain text is written when the output is not a terminal.
package log
