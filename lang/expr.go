package lang

import (
	"log/slog"
	"math"
)

// Op identifies the variant of an [Expr] node.
type Op uint8

const (
	OpConst Op = iota // const
	OpAdd             // add
	OpSub             // sub
	OpMul             // mul
	OpDiv             // div
	OpRem             // rem
	OpNeg             // neg
	OpAbs             // abs
)

// String returns the lowercase name of the operator.
func (o Op) String() string {
	switch o {
	case OpConst:
		return "const"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpRem:
		return "rem"
	case OpNeg:
		return "neg"
	case OpAbs:
		return "abs"
	default:
		return "invalid"
	}
}

// Arity returns the number of sub-expressions owned by a node of kind o.
func (o Op) Arity() int {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv, OpRem:
		return 2
	case OpNeg, OpAbs:
		return 1
	default:
		return 0
	}
}

// Expr is a node of an arithmetic expression tree.
//
// A node is either a constant leaf holding Value, or an operator owning one
// (Left) or two (Left, Right) sub-expressions. Trees are built bottom-up by
// the parser and never mutated afterwards; no node is shared between parents.
type Expr struct {
	Left  *Expr
	Right *Expr
	Value float64
	Op    Op
}

// Constant returns a leaf holding v.
func Constant(v float64) *Expr { return &Expr{Op: OpConst, Value: v} }

// Integer returns a leaf holding n converted to float64.
// Magnitudes above 2^53 are rounded to the nearest representable value.
func Integer(n int64) *Expr { return Constant(float64(n)) }

func Add(l, r *Expr) *Expr { return &Expr{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r *Expr) *Expr { return &Expr{Op: OpSub, Left: l, Right: r} }
func Mul(l, r *Expr) *Expr { return &Expr{Op: OpMul, Left: l, Right: r} }
func Div(l, r *Expr) *Expr { return &Expr{Op: OpDiv, Left: l, Right: r} }
func Rem(l, r *Expr) *Expr { return &Expr{Op: OpRem, Left: l, Right: r} }
func Neg(e *Expr) *Expr    { return &Expr{Op: OpNeg, Left: e} }
func Abs(e *Expr) *Expr    { return &Expr{Op: OpAbs, Left: e} }

// Evaluate computes the value of the tree rooted at e.
//
// Evaluation never fails: division or remainder by zero produce ±Inf or NaN
// following IEEE 754, and remainder takes the sign of the dividend.
func (e *Expr) Evaluate() float64 {
	switch e.Op {
	case OpConst:
		return e.Value
	case OpAdd:
		return e.Left.Evaluate() + e.Right.Evaluate()
	case OpSub:
		return e.Left.Evaluate() - e.Right.Evaluate()
	case OpMul:
		return e.Left.Evaluate() * e.Right.Evaluate()
	case OpDiv:
		return e.Left.Evaluate() / e.Right.Evaluate()
	case OpRem:
		return remainder(e.Left.Evaluate(), e.Right.Evaluate())
	case OpNeg:
		return -e.Left.Evaluate()
	case OpAbs:
		return magnitude(e.Left.Evaluate())
	default:
		return math.NaN()
	}
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (e *Expr) Depth() int {
	if e == nil {
		return 0
	}

	return 1 + max(e.Left.Depth(), e.Right.Depth())
}

// Size returns the total number of nodes in the tree.
func (e *Expr) Size() int {
	if e == nil {
		return 0
	}

	return 1 + e.Left.Size() + e.Right.Size()
}

// LogValue implements [slog.LogValuer] with a summary of the tree shape.
func (e *Expr) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("<nil>")
	}

	return slog.GroupValue(
		slog.String("root", e.Op.String()),
		slog.Int("nodes", e.Size()),
		slog.Int("depth", e.Depth()),
	)
}

func remainder(x, y float64) float64 { return math.Mod(x, y) }

// magnitude negates strictly negative values and passes everything else
// (including -0 and NaN) through unchanged.
func magnitude(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
