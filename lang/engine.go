package lang

import (
	"iter"
	"log/slog"
	"strings"
)

// Engine selects how an expression tree is evaluated.
type Engine uint8

const (
	EngineTree Engine = iota // tree
	EngineVM                 // vm
)

// DefaultEngine is the engine used when none is selected.
const DefaultEngine = EngineTree

func (g Engine) String() string {
	switch g {
	case EngineVM:
		return "vm"
	default:
		return "tree"
	}
}

// Engines returns an iterator over the names of all engines.
func Engines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, g := range []Engine{EngineTree, EngineVM} {
			if !yield(g.String()) {
				return
			}
		}
	}
}

// ParseEngine parses the name of an engine, case-insensitively.
// Unrecognized names select [DefaultEngine].
func ParseEngine(s string) Engine {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vm":
		return EngineVM
	case "tree":
		return EngineTree
	default:
		return DefaultEngine
	}
}

// Evaluate computes the value of e with engine g.
//
// The tree engine never fails. The vm engine fails only if the tree cannot
// be compiled or executed by expr-lang.
func (g Engine) Evaluate(e *Expr) (float64, error) {
	if g != EngineVM {
		return e.Evaluate(), nil
	}

	program, err := Compile(e)
	if err != nil {
		return 0, err
	}

	v, err := program.Run()
	if err != nil {
		return 0, WrapError(err).With(slog.Int("nodes", e.Size()))
	}

	return v, nil
}
