package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(context.Background(), Config{}, NewHistory(""))
}

func typeText(m model, s string) model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func press(m model, k tea.KeyType) (model, tea.Cmd) {
	return m.handleKey(tea.KeyMsg{Type: k})
}

func TestModel_EvaluateKeepsRunning(t *testing.T) {
	m := typeText(testModel(t), "1+2")

	m, cmd := press(m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("Enter returned no command")
	}

	if m.quitting {
		t.Error("model quit after a present expression")
	}

	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}

	if e, err := m.history.Entry(0); err != nil || e.Line != "1+2" || e.Mode != modeEval {
		t.Errorf("history entry = %+v, %v", e, err)
	}
}

func TestModel_EmptyLineSaysGoodbye(t *testing.T) {
	m, cmd := press(testModel(t), tea.KeyEnter)

	if !m.quitting {
		t.Error("quitting = false after empty line")
	}

	if cmd == nil {
		t.Error("Enter returned no command")
	}

	if m.View() != "" {
		t.Errorf("View() = %q, want empty after quitting", m.View())
	}
}

func TestModel_ErrorKeepsRunning(t *testing.T) {
	m := typeText(testModel(t), "(1")

	m, _ = press(m, tea.KeyEnter)
	if m.quitting {
		t.Error("model quit after a syntax error")
	}
}

func TestModel_CtrlKeys(t *testing.T) {
	t.Run("ctrl_c_clears_then_quits", func(t *testing.T) {
		m := typeText(testModel(t), "12")

		m, _ = press(m, tea.KeyCtrlC)
		if m.quitting || m.input.Value() != "" {
			t.Fatalf("first Ctrl+C: quitting=%v input=%q", m.quitting, m.input.Value())
		}

		m, _ = press(m, tea.KeyCtrlC)
		if !m.quitting {
			t.Error("second Ctrl+C did not quit")
		}
	})

	t.Run("ctrl_d_ignored_with_input", func(t *testing.T) {
		m := typeText(testModel(t), "3")

		m, _ = press(m, tea.KeyCtrlD)
		if m.quitting {
			t.Error("Ctrl+D quit with pending input")
		}
	})

	t.Run("ctrl_d_quits_on_empty", func(t *testing.T) {
		m, _ := press(testModel(t), tea.KeyCtrlD)
		if !m.quitting {
			t.Error("Ctrl+D did not quit")
		}
	})
}

func TestModel_ToggleModePreservesText(t *testing.T) {
	m := typeText(testModel(t), "4*5")

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("after Esc: mode=%v input=%q", m.mode, m.input.Value())
	}

	m = typeText(m, "hel")

	m, _ = press(m, tea.KeyEsc)
	if m.mode != modeEval || m.input.Value() != "4*5" {
		t.Fatalf("after second Esc: mode=%v input=%q", m.mode, m.input.Value())
	}

	m, _ = press(m, tea.KeyEsc)
	if m.input.Value() != "hel" {
		t.Errorf("ctrl text = %q, want %q", m.input.Value(), "hel")
	}
}

func TestModel_TabCompletesCommand(t *testing.T) {
	m, _ := press(testModel(t), tea.KeyEsc)
	m = typeText(m, "qu")

	m, _ = press(m, tea.KeyTab)
	if m.input.Value() != "quit" {
		t.Fatalf("input = %q, want %q", m.input.Value(), "quit")
	}

	m, _ = press(m, tea.KeyEnter)
	if !m.quitting {
		t.Error("quit command did not quit")
	}
}

func TestModel_TabCyclesAndEscRestores(t *testing.T) {
	m, _ := press(testModel(t), tea.KeyEsc)
	m = typeText(m, "e")

	if len(m.matches) < 2 {
		t.Fatalf("matches = %d, want several", len(m.matches))
	}

	m, _ = press(m, tea.KeyTab)
	if !m.tabActive || m.input.Value() != m.matches[0].Str {
		t.Fatalf("after Tab: active=%v input=%q", m.tabActive, m.input.Value())
	}

	m, _ = press(m, tea.KeyShiftTab)
	if want := m.matches[len(m.matches)-1].Str; m.input.Value() != want {
		t.Errorf("after Shift+Tab: input=%q, want %q", m.input.Value(), want)
	}

	m, _ = press(m, tea.KeyEsc)
	if m.tabActive || m.input.Value() != "e" || m.mode != modeCtrl {
		t.Errorf("after Esc: active=%v input=%q mode=%v", m.tabActive, m.input.Value(), m.mode)
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	h := NewHistory("")
	_ = h.Add("1", modeEval)
	_ = h.Add("help", modeCtrl)
	_ = h.Add("2", modeEval)

	m := newModel(context.Background(), Config{}, h)

	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "2" {
		t.Fatalf("Up: input = %q", m.input.Value())
	}

	m, _ = press(m, tea.KeyUp)
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Fatalf("Up: input = %q mode = %v", m.input.Value(), m.mode)
	}

	m, _ = press(m, tea.KeyShiftUp)
	if m.input.Value() != "help" {
		t.Errorf("Shift+Up in ctrl mode moved to %q", m.input.Value())
	}

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	if m.input.Value() != "" || m.historyIdx != h.Len() {
		t.Errorf("Down past newest: input = %q idx = %d", m.input.Value(), m.historyIdx)
	}
}

func TestModel_HintView(t *testing.T) {
	m := testModel(t)
	if !strings.Contains(m.hintView(), "Enter on an empty line") {
		t.Errorf("empty hint = %q", m.hintView())
	}

	m = typeText(m, "6*7")
	if !strings.Contains(m.hintView(), "= 42") {
		t.Errorf("preview = %q", m.hintView())
	}

	m = typeText(m, ")")
	if !strings.Contains(m.hintView(), "Extra input, at index 3") {
		t.Errorf("error preview = %q", m.hintView())
	}
}

func TestModel_UnknownCommand(t *testing.T) {
	m, _ := press(testModel(t), tea.KeyEsc)
	m = typeText(m, "zz")

	m, cmd := press(m, tea.KeyEnter)
	if m.quitting || cmd == nil {
		t.Errorf("unknown command: quitting=%v cmd=%v", m.quitting, cmd != nil)
	}
}
