// Package cli contains the command line interface for calc.
//
// # Usage
//
//	calc                      # interactive REPL (plain loop when piped)
//	calc repl --plain         # line-oriented loop even on a terminal
//	calc eval '1+2' '|2-9|'   # evaluate arguments
//	calc eval -f exprs.txt -o json
//	calc init                 # write the current flags to config.yaml
//
// # Global Options
//
//   - --engine: evaluation engine (tree, vm)
//   - --max-depth: parser nesting limit, 0 for unlimited
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp format (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorized pretty printing
//
// # Configuration Files
//
// Flag defaults are read from config.yaml, config.json and config.toml in
// the user configuration directory (e.g. ~/.config/calc), in that order of
// increasing precedence. Keys are flag names:
//
//	engine: vm
//	max-depth: 64
//	log:
//	  level: debug
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o calc .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, ...)
//   - --pprof-dir: profile output directory (default ~/.cache/calc/pprof)
package cli
