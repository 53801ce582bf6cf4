package repl

import (
	"context"
	"testing"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "hist", 4, "hist", 0, 4},
		{"mid_word", "history", 3, "history", 0, 7},
		{"at_start", "help", 0, "help", 0, 4},
		{"second_word", "edit now", 8, "now", 5, 8},
		{"empty_at_boundary", "edit ", 5, "", 5, 5},
		{"leading_space", "  cl", 4, "cl", 2, 4},
		{"cursor_past_end", "quit", 99, "quit", 0, 4},
		{"negative_cursor", "quit", -1, "quit", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"ctrl_prefix", modeCtrl, "hi", []string{"history"}},
		{"ctrl_fuzzy", modeCtrl, "qt", []string{"quit"}},
		{"ctrl_ambiguous", modeCtrl, "e", nil},
		{"ctrl_empty", modeCtrl, "", nil},
		{"ctrl_argument_not_completed", modeCtrl, "edit he", nil},
		{"eval_never_completes", modeEval, "he", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(context.Background(), Config{}, NewHistory(""))
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.CursorEnd()

			matches, _, _ := m.computeMatches()

			if tt.want == nil {
				if tt.name == "ctrl_ambiguous" {
					if len(matches) < 2 {
						t.Errorf("got %d matches, want several", len(matches))
					}

					return
				}

				if len(matches) != 0 {
					t.Errorf("got %d matches, want none", len(matches))
				}

				return
			}

			if len(matches) != len(tt.want) {
				t.Fatalf("got %d matches, want %v", len(matches), tt.want)
			}

			for i, w := range tt.want {
				if matches[i].Str != w {
					t.Errorf("match %d = %q, want %q", i, matches[i].Str, w)
				}
			}
		})
	}
}

func TestRenderCandidateBar_Ellipsizes(t *testing.T) {
	m := newModel(context.Background(), Config{}, NewHistory(""))
	m.mode = modeCtrl
	m.input.SetValue("e")
	m.input.CursorEnd()

	matches, _, _ := m.computeMatches()
	if len(matches) < 2 {
		t.Fatalf("need several matches, got %d", len(matches))
	}

	if bar := renderCandidateBar(matches, -1, false, 0); bar != "" {
		t.Errorf("zero width bar = %q, want empty", bar)
	}

	narrow := renderCandidateBar(matches, -1, false, 8)
	wide := renderCandidateBar(matches, -1, false, 200)

	if len(narrow) >= len(wide) {
		t.Errorf("narrow bar not shorter than wide bar: %q vs %q", narrow, wide)
	}
}
