package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/gradecalc/internal/collector"
	"github.com/agbru/gradecalc/internal/format"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/metrics"
	"github.com/agbru/gradecalc/internal/report"
)

// answer types text into the form and presses enter.
func answer(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_FullConversation(t *testing.T) {
	session := metrics.NewSession()
	m := NewModel(grades.DefaultThreshold, 0, session, nil)

	steps := []struct {
		text      string
		wantState collector.State
		wantMsg   string
	}{
		{"  ", collector.AwaitingSubject, collector.MsgEmptySubject},
		{"Matemáticas", collector.AwaitingGrade, ""},
		{"once", collector.AwaitingGrade, collector.MsgNotANumber},
		{"11", collector.AwaitingGrade, collector.MsgOutOfRange},
		{"8,5", collector.AwaitingContinue, ""},
		{"x", collector.AwaitingContinue, collector.MsgInvalidAnswer},
		{"Sí", collector.AwaitingSubject, ""},
		{"Física", collector.AwaitingGrade, ""},
		{"4", collector.AwaitingContinue, ""},
	}

	for i, step := range steps {
		var cmd tea.Cmd
		m, cmd = answer(t, m, step.text)
		if m.State() != step.wantState {
			t.Fatalf("step %d (%q): state = %v, want %v", i, step.text, m.State(), step.wantState)
		}
		if m.message != step.wantMsg {
			t.Errorf("step %d (%q): message = %q, want %q", i, step.text, m.message, step.wantMsg)
		}
		if isQuit(cmd) {
			t.Fatalf("step %d (%q): form quit early", i, step.text)
		}
		if m.input.Value() != "" {
			t.Errorf("step %d: input should be cleared, got %q", i, m.input.Value())
		}
	}

	m, cmd := answer(t, m, "n")
	if m.State() != collector.Done || !isQuit(cmd) {
		t.Fatalf("negative answer should finish the form, state = %v", m.State())
	}
	if m.Aborted() {
		t.Error("finished form should not be marked aborted")
	}

	want := grades.Entries{{Subject: "Matemáticas", Grade: 8.5}, {Subject: "Física", Grade: 4}}
	got := m.Entries()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Entries() = %+v, want %+v", got, want)
	}
	if m.View() != "" {
		t.Error("View() should be empty once the form is done")
	}

	var dump strings.Builder
	if err := session.WriteText(&dump); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	for _, want := range []string{
		"gradecalc_entries_total 2",
		`gradecalc_input_rejections_total{field="grade",reason="not a number"} 1`,
		`gradecalc_input_rejections_total{field="answer",reason="invalid answer"} 1`,
	} {
		if !strings.Contains(dump.String(), want) {
			t.Errorf("metrics dump should contain %q, got:\n%s", want, dump.String())
		}
	}
}

func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := NewModel(grades.DefaultThreshold, 0, nil, nil)
		m, _ = answer(t, m, "Arte")
		m, _ = answer(t, m, "7")

		next, cmd := m.Update(msg)
		final := next.(Model)
		if !final.Aborted() || !isQuit(cmd) {
			t.Errorf("%s should abort the form", msg.String())
		}
		if len(final.Entries()) != 1 {
			t.Errorf("entries accepted before aborting should be kept, got %d", len(final.Entries()))
		}
	}
}

func TestModel_TypingRunes(t *testing.T) {
	t.Parallel()
	m := NewModel(grades.DefaultThreshold, 0, nil, nil)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Arte")})
	m = next.(Model)
	if m.input.Value() != "Arte" {
		t.Fatalf("typed value = %q, want %q", m.input.Value(), "Arte")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(Model).State() != collector.AwaitingGrade {
		t.Errorf("state = %v, want %v", next.(Model).State(), collector.AwaitingGrade)
	}
}

func TestModel_View(t *testing.T) {
	t.Parallel()
	m := NewModel(6, 0, nil, nil)
	m, _ = answer(t, m, "Química")
	if view := m.View(); !strings.Contains(view, "Ingrese la calificación (0 a 10):") || !strings.Contains(view, "Química") {
		t.Errorf("view should show the grade prompt and the pending subject, got:\n%s", view)
	}

	m, _ = answer(t, m, "12")
	if view := m.View(); !strings.Contains(view, collector.MsgOutOfRange) {
		t.Errorf("view should show the rejection message, got:\n%s", view)
	}

	m, _ = answer(t, m, "5,5")
	view := m.View()
	for _, want := range []string{"Calculadora de Promedios", "1 materias", " 5.50", "¿Desea ingresar otra materia? (S/N):"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q, got:\n%s", want, view)
		}
	}
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()
	m := NewModel(grades.DefaultThreshold, 0, nil, nil)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if cmd != nil {
		t.Error("resize should not return a command")
	}
	if next.(Model).width != 100 {
		t.Errorf("width = %d, want 100", next.(Model).width)
	}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Submit", km.Submit, []string{"enter"}},
		{"Quit", km.Quit, []string{"ctrl+c", "esc"}},
	}
	for _, b := range bindings {
		if !b.binding.Enabled() {
			t.Errorf("expected %s binding to be enabled", b.name)
		}
		got := b.binding.Keys()
		if strings.Join(got, ",") != strings.Join(b.keys, ",") {
			t.Errorf("%s keys = %v, want %v", b.name, got, b.keys)
		}
	}
	if len(km.ShortHelp()) != 2 || len(km.FullHelp()) != 1 {
		t.Error("help should list both bindings")
	}
}

func TestModel_NameWidth(t *testing.T) {
	t.Parallel()
	long := "Introducción a la Programación Funcional"

	for _, tt := range []struct {
		width int
		want  string
	}{
		{0, format.Cell(long, report.DefaultNameWidth)},
		{12, format.Cell(long, 12)},
		{45, format.Cell(long, 45)},
	} {
		m := NewModel(grades.DefaultThreshold, tt.width, nil, nil)
		m, _ = answer(t, m, long)
		m, _ = answer(t, m, "7")
		if view := m.View(); !strings.Contains(view, " 1. "+tt.want+" -> ") {
			t.Errorf("width %d: view should list %q, got:\n%s", tt.width, tt.want, view)
		}
	}
}
