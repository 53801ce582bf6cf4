package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same_kind", syntaxError(KindMalformedNumber, msgIncorrectNumber, 3), ErrMalformedNumber, true},
		{"paren", syntaxError(KindUnbalancedGroup, msgExpectedParen, 0), ErrUnbalancedGroup, true},
		{"bar", syntaxError(KindUnbalancedGroup, msgExpectedBar, 0), ErrUnbalancedGroup, true},
		{"other_kind", syntaxError(KindTrailingInput, msgExtraInput, 3), ErrMalformedNumber, false},
		{"with_attrs", syntaxError(KindTrailingInput, msgExtraInput, 3).With(slog.Int("n", 1)), ErrTrailingInput, true},
		{"positioned_target", ErrTrailingInput, syntaxError(KindTrailingInput, msgExtraInput, 3), false},
		{"plain_sentinel", ErrCompile, ErrCompile, true},
		{"plain_wrapped", ErrEvaluate.Wrap(io.EOF), io.EOF, true},
		{"plain_vs_kind", ErrCompile, ErrMalformedNumber, false},
		{"derived_sentinel", ErrReadLine.Wrap(io.EOF).With(slog.Int("line", 2)), ErrReadLine, true},
		{"derived_other", ErrReadLine.With(slog.Int("line", 2)), ErrEvaluate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"positioned", syntaxError(KindUnbalancedGroup, msgExpectedParen, 4), "Expected ')', at index 4"},
		{"message_only", NewError("compile expression"), "compile expression"},
		{"wrapped", ErrReadLine.Wrap(io.ErrUnexpectedEOF), "read input line: unexpected EOF"},
		{"cause_only", WrapError(io.EOF), "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapError_KeepsError(t *testing.T) {
	orig := syntaxError(KindTrailingInput, msgExtraInput, 2)

	if got := WrapError(orig); got != orig {
		t.Errorf("WrapError(*Error) = %p, want %p", got, orig)
	}
}

func TestError_Snippet(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		line string
		want string
	}{
		{
			"end_of_input",
			syntaxError(KindUnbalancedGroup, msgExpectedParen, 4),
			"(1+2",
			"  | (1+2\n  |     ^",
		},
		{
			"start",
			syntaxError(KindMalformedNumber, msgIncorrectNumber, 0),
			"1.2.3\n",
			"  | 1.2.3\n  | ^",
		},
		{
			"tab_aligned",
			syntaxError(KindTrailingInput, msgExtraInput, 2),
			"1\t2",
			"  | 1\t2\n  |  \t^",
		},
		{
			"no_position",
			NewError("compile expression"),
			"1",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Snippet(tt.line); got != tt.want {
				t.Errorf("Snippet(%q) =\n%s\nwant\n%s", tt.line, got, tt.want)
			}
		})
	}
}

func TestError_LogValue(t *testing.T) {
	err := syntaxError(KindMalformedNumber, msgIncorrectNumber, 5).
		With(slog.String("literal", "1..2"))

	attrs := err.LogValue().Group()

	want := map[string]string{
		"error":   "Incorrect number",
		"kind":    "malformed number",
		"index":   "5",
		"literal": "1..2",
	}

	if len(attrs) != len(want) {
		t.Fatalf("LogValue() has %d attrs, want %d: %v", len(attrs), len(want), attrs)
	}

	for _, a := range attrs {
		if want[a.Key] != a.Value.String() {
			t.Errorf("attr %s = %q, want %q", a.Key, a.Value.String(), want[a.Key])
		}
	}
}
