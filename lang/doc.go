// Package lang parses and evaluates single-line arithmetic expressions.
//
// # Grammar
//
// Precedence is encoded by call layering, lowest precedence outermost.
// Both binary levels recurse on their right operand, so operators of equal
// precedence associate to the right ("8-3-2" is 8-(3-2) = 7).
//
//	add    → mul (('+' | '-') add)?
//	mul    → base (('*' | '/' | '%') mul)?
//	base   → '-' base | '+' base | '(' add ')' | '|' add '|' | number
//	number → [0-9.]+
//
// Spaces and tabs may appear between any two tokens. A line terminator
// ('\n' or '\r') ends the input. Unary '+' negates its operand, the same as
// unary '-'.
//
// # Results
//
// Every parse step yields a [Result] in one of three states:
//
//   - present: an expression tree ([Expr]) was built
//   - absent: nothing could be matched; not an error
//   - error: a syntax error with a message and a 0-based character index
//
// [Result.Map] and [Result.Then] transform present results and pass absent
// and error results through untouched. A blank line parses as absent.
//
// # Errors
//
// Syntax errors are [*Error] values classified by [Kind]:
//
//	"Incorrect number"  malformed numeric literal   (ErrMalformedNumber)
//	"Expected ')'"      missing closing parenthesis (ErrUnbalancedGroup)
//	"Expected '|'"      missing closing bar         (ErrUnbalancedGroup)
//	"Extra input"       unparsed trailing input     (ErrTrailingInput)
//	"Nesting too deep"  see WithMaxDepth            (ErrNestingTooDeep)
//
// # Evaluation
//
// [Expr.Evaluate] walks the tree directly. [Compile] translates a tree into an
// expr-lang program producing identical results; [Engine] selects between the
// two. Evaluation never fails: division and remainder by zero produce IEEE 754
// infinities and NaN.
//
// # Example
//
//	res := lang.Parse(ctx, "|2-9| * 3")
//	if e, ok := res.Expr(); ok {
//		fmt.Println(e.Evaluate()) // 21
//	}
package lang
