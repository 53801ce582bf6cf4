package lang

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzParse checks that Parse never panics and that every error position lies
// within the line.
func FuzzParse(f *testing.F) {
	// Seed corpus with known valid and invalid inputs
	f.Add("")
	f.Add("   ")
	f.Add("1")
	f.Add("8-3-2")
	f.Add("-3*2")
	f.Add("|-5|")
	f.Add("|2-9|")
	f.Add("(1+2")
	f.Add("1.2.3")
	f.Add("1 2")
	f.Add("1 + )")
	f.Add("((|1|))%.5/0")
	f.Add("1+2\n3")
	f.Add("\t+-+-1")

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Parse panicked on input %q: %v", input, r)
			}
		}()

		res := Parse(context.Background(), input)

		switch res.State() {
		case StateError:
			limit := utf8.RuneCountInString(input)
			if pos := res.Position(); pos < 0 || pos > limit {
				t.Errorf("Parse(%q) error position %d outside [0, %d]", input, pos, limit)
			}

		case StatePresent:
			e, _ := res.Expr()
			_ = e.Evaluate()
		}
	})
}

// FuzzParse_Spacing checks that padding a line with spaces does not change
// its outcome.
func FuzzParse_Spacing(f *testing.F) {
	f.Add("1+2")
	f.Add("(1")
	f.Add("|3|*2")

	f.Fuzz(func(t *testing.T, input string) {
		if strings.ContainsAny(input, "\r\n") {
			t.Skip("line terminator")
		}

		plain := Parse(context.Background(), input)
		padded := Parse(context.Background(), "  "+input+"\t")

		if plain.State() != padded.State() {
			t.Fatalf("padding changed state of %q: %v -> %v",
				input, plain.State(), padded.State())
		}

		if plain.IsError() && plain.Message() != padded.Message() {
			t.Errorf("padding changed message of %q: %q -> %q",
				input, plain.Message(), padded.Message())
		}

		if a, ok := plain.Expr(); ok {
			b, _ := padded.Expr()
			if !sameFloat(a.Evaluate(), b.Evaluate()) {
				t.Errorf("padding changed value of %q: %v -> %v",
					input, a.Evaluate(), b.Evaluate())
			}
		}
	})
}
