package lang

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Identifiers bound in the expr-lang environment of a compiled tree.
const (
	envConstants = "k"
	fnRemainder  = "rem"
	fnMagnitude  = "mag"
)

// Program is an expression tree compiled to an expr-lang program.
//
// Constants are not rendered as literals; they are bound by index from the
// program environment, so every float64 (including ±Inf and NaN) reaches the
// virtual machine unchanged.
type Program struct {
	program *vm.Program
	env     map[string]any
	source  string
}

// Compile translates the tree rooted at e into an expr-lang program.
func Compile(e *Expr) (*Program, error) {
	if e == nil {
		return nil, ErrCompile.With(slog.String("reason", "nil expression"))
	}

	var (
		src    strings.Builder
		consts = make([]float64, 0, e.Size())
	)

	translate(&src, e, &consts)

	env := map[string]any{envConstants: consts}
	source := src.String()

	program, err := expr.Compile(
		source,
		expr.Env(env),
		expr.AsFloat64(),
		expr.MaxNodes(0),
		expr.Function(
			fnRemainder,
			func(params ...any) (any, error) {
				return remainder(asFloat(params[0]), asFloat(params[1])), nil
			},
			new(func(float64, float64) float64),
		),
		expr.Function(
			fnMagnitude,
			func(params ...any) (any, error) {
				return magnitude(asFloat(params[0])), nil
			},
			new(func(float64) float64),
		),
	)
	if err != nil {
		return nil, ErrCompile.Wrap(err).With(slog.Int("nodes", e.Size()))
	}

	return &Program{
		program: program,
		env:     env,
		source:  source,
	}, nil
}

// Run executes the program.
func (p *Program) Run() (float64, error) {
	out, err := vm.Run(p.program, p.env)
	if err != nil {
		return math.NaN(), ErrEvaluate.Wrap(err)
	}

	v, ok := out.(float64)
	if !ok {
		return math.NaN(), ErrEvaluate.
			With(slog.String("type", fmt.Sprintf("%T", out)))
	}

	return v, nil
}

// Source returns the expr-lang source the program was compiled from.
func (p *Program) Source() string { return p.source }

// translate writes e as a fully parenthesized expr-lang expression, appending
// its constants to consts in left-to-right order.
func translate(b *strings.Builder, e *Expr, consts *[]float64) {
	switch e.Op {
	case OpConst:
		b.WriteString(envConstants)
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(len(*consts)))
		b.WriteByte(']')

		*consts = append(*consts, e.Value)

	case OpAdd, OpSub, OpMul, OpDiv:
		b.WriteByte('(')
		translate(b, e.Left, consts)
		b.WriteByte(' ')
		b.WriteString(infix[e.Op])
		b.WriteByte(' ')
		translate(b, e.Right, consts)
		b.WriteByte(')')

	case OpRem:
		b.WriteString(fnRemainder)
		b.WriteByte('(')
		translate(b, e.Left, consts)
		b.WriteString(", ")
		translate(b, e.Right, consts)
		b.WriteByte(')')

	case OpNeg:
		b.WriteString("(-")
		translate(b, e.Left, consts)
		b.WriteByte(')')

	case OpAbs:
		b.WriteString(fnMagnitude)
		b.WriteByte('(')
		translate(b, e.Left, consts)
		b.WriteByte(')')
	}
}

var infix = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return math.NaN()
	}
}
