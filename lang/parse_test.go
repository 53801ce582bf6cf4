package lang

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParse_Values(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", "1", 1},
		{"decimal", "2.5", 2.5},
		{"leading_dot", ".5", 0.5},
		{"trailing_dot", "1.", 1},
		{"sum", "1+2", 3},
		{"precedence_mul_first", "2*3+4", 10},
		{"precedence_mul_second", "2+3*4", 14},
		{"right_assoc_sub", "8-3-2", 7},
		{"right_assoc_mixed", "2-3+4", -5},
		{"right_assoc_div", "16/4/2", 8},
		{"rem", "7%4", 3},
		{"rem_then_mul", "2*3%4", 6},
		{"rem_negative_dividend", "-7%4", -3},
		{"rem_negative_divisor", "7%-4", 3},
		{"sub_product", "10-2*3", 4},
		{"unary_minus_binds_base", "-3*2", -6},
		{"double_negation", "--3", 3},
		{"group", "(1+2)*3", 9},
		{"nested_groups", "((((1))))", 1},
		{"abs_negative", "|-5|", 5},
		{"abs_difference", "|2-9|", 7},
		{"abs_spaced", "| 2 - 9 | * 2", 14},
		{"abs_nested", "||-3|-|-5||", 2},
		{"spaces_and_tabs", "  1 +\t2  ", 3},
		{"trailing_newline", "1+2\n", 3},
		{"trailing_crlf", "1+2\r\n", 3},
		{"text_after_newline", "1+2\nxyz", 3},
		{"div_by_zero", "1/0", math.Inf(1)},
		{"neg_div_by_zero", "-1/0", math.Inf(-1)},
		{"huge_literal", strings.Repeat("9", 400), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(context.Background(), tt.input)

			e, ok := res.Expr()
			if !ok {
				t.Fatalf("Parse(%q) = %v, want present", tt.input, res.State())
			}

			if got := e.Evaluate(); got != tt.want {
				t.Errorf("Parse(%q).Evaluate() = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Unary plus negates its operand. This mirrors the grammar as written and is
// most likely a bug in it; the test pins the behavior so a change is visible.
func TestParse_UnaryPlusNegates(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"+3", -3},
		{"++3", 3},
		{"1++2", -1},
		{"+(2*3)", -6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, ok := Parse(context.Background(), tt.input).Expr()
			if !ok {
				t.Fatalf("Parse(%q) not present", tt.input)
			}

			if got := e.Evaluate(); got != tt.want {
				t.Errorf("Parse(%q).Evaluate() = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_NaN(t *testing.T) {
	for _, input := range []string{"0/0", "5%0", "1/0-1/0"} {
		t.Run(input, func(t *testing.T) {
			e, ok := Parse(context.Background(), input).Expr()
			if !ok {
				t.Fatalf("Parse(%q) not present", input)
			}

			if got := e.Evaluate(); !math.IsNaN(got) {
				t.Errorf("Parse(%q).Evaluate() = %v, want NaN", input, got)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		index   int
		kind    error
	}{
		{"unclosed_paren", "(1+2", "Expected ')'", 4, ErrUnbalancedGroup},
		{"unclosed_paren_inner", "2*(3", "Expected ')'", 4, ErrUnbalancedGroup},
		{"paren_closed_by_bar", "(1+2|", "Expected ')'", 4, ErrUnbalancedGroup},
		{"unclosed_bar", "|1", "Expected '|'", 2, ErrUnbalancedGroup},
		{"unclosed_bar_spaced", "| 1 + 2  ", "Expected '|'", 9, ErrUnbalancedGroup},
		{"two_dots", "1.2.3", "Incorrect number", 0, ErrMalformedNumber},
		{"bad_number_later", "1 + 2.3.4", "Incorrect number", 4, ErrMalformedNumber},
		{"lone_dot", ".", "Incorrect number", 0, ErrMalformedNumber},
		{"two_numbers", "1 2", "Extra input", 2, ErrTrailingInput},
		{"stray_paren", "1 + )", "Extra input", 4, ErrTrailingInput},
		{"empty_group", "()", "Extra input", 1, ErrTrailingInput},
		{"letter", "x", "Extra input", 0, ErrTrailingInput},
		{"letter_operand", "1+x", "Extra input", 2, ErrTrailingInput},
		{"close_without_open", "1)", "Extra input", 1, ErrTrailingInput},
		{"non_ascii_digit", "1 ٣", "Extra input", 2, ErrTrailingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(context.Background(), tt.input)
			if !res.IsError() {
				t.Fatalf("Parse(%q) = %v, want error", tt.input, res.State())
			}

			if res.Message() != tt.message || res.Position() != tt.index {
				t.Errorf("Parse(%q) = (%q, %d), want (%q, %d)",
					tt.input, res.Message(), res.Position(), tt.message, tt.index)
			}

			if !errors.Is(res.Err(), tt.kind) {
				t.Errorf("Parse(%q) error %v is not %v", tt.input, res.Err(), tt.kind)
			}
		})
	}
}

func TestParse_Absent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs", "\t\t"},
		{"mixed_blank", " \t \t"},
		{"newline", "\n"},
		{"blank_crlf", "  \r\n"},
		// The absence of a right operand makes the whole line absent.
		{"dangling_operator", "1+"},
		{"dangling_operator_spaced", "2 * "},
		{"open_paren", "("},
		{"open_bar", "|"},
		{"unary_only", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(context.Background(), tt.input)
			if !res.IsAbsent() {
				t.Errorf("Parse(%q) = %v, want absent", tt.input, res.State())
			}
		})
	}
}

func TestParse_WhitespaceIdempotent(t *testing.T) {
	exprs := [][]string{
		{"(", "1", "+", "2", ")", "*", "3"},
		{"|", "-", "5", "|", "%", "3"},
		{"8", "-", "3", "-", "2"},
		{"-", "(", "4", "/", "0.5", ")", "+", "|", "2", "-", "9", "|"},
	}

	seps := []string{"", " ", "\t", "  \t "}

	for _, tokens := range exprs {
		want, ok := Parse(context.Background(), strings.Join(tokens, "")).Expr()
		if !ok {
			t.Fatalf("Parse(%q) not present", strings.Join(tokens, ""))
		}

		for _, sep := range seps {
			line := sep + strings.Join(tokens, sep) + sep

			got, ok := Parse(context.Background(), line).Expr()
			if !ok {
				t.Errorf("Parse(%q) not present", line)

				continue
			}

			if got.Evaluate() != want.Evaluate() {
				t.Errorf("Parse(%q) = %v, want %v", line, got.Evaluate(), want.Evaluate())
			}
		}
	}
}

func TestParse_Tree(t *testing.T) {
	e, ok := Parse(context.Background(), "8-3-2").Expr()
	if !ok {
		t.Fatal("Parse(8-3-2) not present")
	}

	if e.Op != OpSub || e.Left.Op != OpConst || e.Right.Op != OpSub {
		t.Errorf("8-3-2 parsed as %v(%v, %v), want sub(const, sub)",
			e.Op, e.Left.Op, e.Right.Op)
	}

	e, ok = Parse(context.Background(), "(7)").Expr()
	if !ok {
		t.Fatal("Parse((7)) not present")
	}

	if e.Op != OpConst || e.Value != 7 {
		t.Errorf("(7) parsed as %v %v, want bare constant", e.Op, e.Value)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000)

	t.Run("unlimited", func(t *testing.T) {
		e, ok := Parse(context.Background(), deep).Expr()
		if !ok {
			t.Fatal("deeply nested input not present")
		}

		if got := e.Evaluate(); got != 1 {
			t.Errorf("Evaluate() = %v, want 1", got)
		}
	})

	t.Run("within_limit", func(t *testing.T) {
		res := Parse(context.Background(), "1", WithMaxDepth(3))
		if !res.IsPresent() {
			t.Errorf("Parse(1) with depth 3 = %v, want present", res.State())
		}
	})

	t.Run("exceeded", func(t *testing.T) {
		res := Parse(context.Background(), "(1)", WithMaxDepth(3))
		if !res.IsError() {
			t.Fatalf("Parse((1)) with depth 3 = %v, want error", res.State())
		}

		if res.Message() != "Nesting too deep" || res.Position() != 1 {
			t.Errorf("got (%q, %d), want (%q, 1)",
				res.Message(), res.Position(), "Nesting too deep")
		}

		if !errors.Is(res.Err(), ErrNestingTooDeep) {
			t.Errorf("error %v is not ErrNestingTooDeep", res.Err())
		}
	})
}

func TestParseReader(t *testing.T) {
	input := "1+2\n\n(3\n  \n|-4|\r\n"

	type record struct {
		number int
		state  State
		text   string
	}

	want := []record{
		{1, StatePresent, "1+2"},
		{2, StateAbsent, ""},
		{3, StateError, "(3"},
		{4, StateAbsent, "  "},
		{5, StatePresent, "|-4|"},
	}

	var got []record

	for line, res := range ParseReader(context.Background(), strings.NewReader(input)) {
		got = append(got, record{line.Number, res.State(), line.Text})
	}

	if len(got) != len(want) {
		t.Fatalf("ParseReader yielded %d lines, want %d: %v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i+1, got[i], want[i])
		}
	}
}

func TestParseReader_StopsEarly(t *testing.T) {
	n := 0

	for range ParseReader(context.Background(), strings.NewReader("1\n2\n3\n")) {
		n++
		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d lines, want 2", n)
	}
}

func TestParseReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var results []Result

	for _, res := range ParseReader(ctx, strings.NewReader("1\n2\n")) {
		results = append(results, res)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}

	if !errors.Is(results[0].Err(), context.Canceled) {
		t.Errorf("got %v, want context.Canceled", results[0].Err())
	}
}
