package lang

import (
	"bufio"
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/ardnew/calc/log"
)

// maxLineSize is the longest line accepted by [ParseReader].
const maxLineSize = 1 << 20

// Parse parses a single line into an expression tree.
//
// The result is Present when the whole line forms an expression, Absent when
// nothing could be parsed and only spaces remain, and an Error otherwise.
// A line terminator ('\n' or '\r') ends the input; anything after it is
// ignored.
func Parse(ctx context.Context, line string, opts ...Option) Result {
	p := newParser(line, opts...)

	p.logger.TraceContext(ctx, "parse start",
		slog.Int("length", utf8.RuneCountInString(line)),
		slog.Int("max_depth", p.maxDepth),
	)

	res := p.parse()

	p.logger.TraceContext(ctx, "parse complete",
		slog.Any("result", res),
		slog.Int("index", p.idx),
	)

	return res
}

// Line is one line of input read by [ParseReader].
type Line struct {
	Text   string
	Number int // 1-based
}

// ParseReader parses each line read from r.
//
// Every line is yielded with its result, including blank lines (Absent).
// Reading stops when the consumer stops iterating, when r is exhausted, or
// when ctx is done. A read failure or cancellation is yielded once as an
// error result wrapping [ErrReadLine], without a position.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) iter.Seq2[Line, Result] {
	return func(yield func(Line, Result) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

		n := 0

		for scanner.Scan() {
			n++

			if err := ctx.Err(); err != nil {
				yield(Line{Number: n}, Failed(ErrReadLine.Wrap(context.Cause(ctx))))

				return
			}

			line := Line{Text: scanner.Text(), Number: n}
			if !yield(line, Parse(ctx, line.Text, opts...)) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(
				Line{Number: n + 1},
				Failed(ErrReadLine.Wrap(err).With(slog.Int("line", n+1))),
			)
		}
	}
}

// parser holds the cursor state of a single parse.
//
// The lookahead cur is the character at byte offset off and character index
// idx; ok is false once the input is exhausted.
type parser struct {
	logger   log.Logger
	input    string
	off      int
	idx      int
	depth    int
	maxDepth int
	cur      rune
	width    int
	ok       bool
}

func newParser(input string, opts ...Option) *parser {
	p := &parser{
		input:    input,
		maxDepth: DefaultMaxDepth,
	}

	applyOptions(p, opts...)
	p.load()

	return p
}

// parse is the top-level rule: an additive expression followed only by
// spaces up to the end of input.
func (p *parser) parse() Result {
	res := p.add()
	if res.IsError() {
		return res
	}

	p.skipSpace()

	if _, ok := p.peek(); !ok {
		return res
	}

	return Failed(syntaxError(KindTrailingInput, msgExtraInput, p.idx))
}

// add := mul (('+' | '-') add)?
func (p *parser) add() Result {
	if err := p.enter(); err != nil {
		return Failed(err)
	}
	defer p.leave()

	lhs := p.mul()

	l, ok := lhs.Expr()
	if !ok {
		return lhs
	}

	var op func(l, r *Expr) *Expr

	switch c, _ := p.symbol(); c {
	case '+':
		op = Add
	case '-':
		op = Sub
	default:
		return lhs
	}

	p.skip()

	return p.add().Map(func(r *Expr) *Expr { return op(l, r) })
}

// mul := base (('*' | '/' | '%') mul)?
func (p *parser) mul() Result {
	if err := p.enter(); err != nil {
		return Failed(err)
	}
	defer p.leave()

	lhs := p.base()

	l, ok := lhs.Expr()
	if !ok {
		return lhs
	}

	var op func(l, r *Expr) *Expr

	switch c, _ := p.symbol(); c {
	case '*':
		op = Mul
	case '/':
		op = Div
	case '%':
		op = Rem
	default:
		return lhs
	}

	p.skip()

	return p.mul().Map(func(r *Expr) *Expr { return op(l, r) })
}

// base := '-' base | '+' base | '(' add ')' | '|' add '|' | number
//
// Unary plus negates exactly like unary minus.
func (p *parser) base() Result {
	if err := p.enter(); err != nil {
		return Failed(err)
	}
	defer p.leave()

	switch c, _ := p.symbol(); c {
	case '-', '+':
		p.skip()

		return p.base().Map(Neg)

	case '(':
		p.skip()

		return p.add().Then(p.closing(')', msgExpectedParen))

	case '|':
		p.skip()

		return p.add().Then(p.closing('|', msgExpectedBar)).Map(Abs)

	default:
		return p.number()
	}
}

// closing returns a continuation that consumes the delimiter want, or fails
// with msg at the current index.
func (p *parser) closing(want rune, msg string) func(*Expr) Result {
	return func(e *Expr) Result {
		if c, ok := p.symbol(); !ok || c != want {
			return Failed(syntaxError(KindUnbalancedGroup, msg, p.idx))
		}

		p.skip()

		return Present(e)
	}
}

// number := /[0-9.]+/
func (p *parser) number() Result {
	p.skipSpace()

	if c, ok := p.peek(); !ok || !isNumberChar(c) {
		return Absent()
	}

	start, from := p.idx, p.off

	for c, ok := p.peek(); ok && isNumberChar(c); c, ok = p.peek() {
		p.skip()
	}

	text := p.input[from:p.off]

	// Out-of-range literals saturate to ±Inf rather than failing.
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Failed(
			syntaxError(KindMalformedNumber, msgIncorrectNumber, start).
				With(slog.String("literal", text)),
		)
	}

	return Present(Constant(v))
}

// Helper methods

// load decodes the character at the current byte offset into the lookahead.
func (p *parser) load() {
	if p.off >= len(p.input) {
		p.cur, p.width, p.ok = 0, 0, false

		return
	}

	p.cur, p.width = utf8.DecodeRuneInString(p.input[p.off:])
	p.ok = true
}

// peek returns the lookahead, reporting false at end of input or at a line
// terminator.
func (p *parser) peek() (rune, bool) {
	if !p.ok || p.cur == '\n' || p.cur == '\r' {
		return 0, false
	}

	return p.cur, true
}

// skip advances past the lookahead.
func (p *parser) skip() {
	if !p.ok {
		return
	}

	p.off += p.width
	p.idx++
	p.load()
}

// symbol skips spaces and returns the lookahead.
func (p *parser) symbol() (rune, bool) {
	p.skipSpace()

	return p.peek()
}

func (p *parser) skipSpace() {
	for c, ok := p.peek(); ok && isSpace(c); c, ok = p.peek() {
		p.skip()
	}
}

func (p *parser) enter() *Error {
	p.depth++

	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.depth--

		return syntaxError(KindNestingTooDeep, msgTooDeep, p.idx).
			With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

func isSpace(c rune) bool { return c == ' ' || c == '\t' }

func isNumberChar(c rune) bool { return ('0' <= c && c <= '9') || c == '.' }
