// Package profile provides optional runtime profiling for calc.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o calc .
//	calc --pprof-mode=cpu eval -f exprs.txt
//	go tool pprof calc ~/.cache/calc/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
// Building with the tag also registers the [net/http/pprof] handlers.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
