package collector

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/metrics"
	"github.com/agbru/gradecalc/internal/ui"
)

func init() {
	ui.SetCurrentTheme(ui.NoColorTheme)
}

// script joins lines into an input stream, one answer per line.
func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestCollector_ReadGrade(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		input        []string
		want         float64
		wantMessages []string
		prompts      int
	}{
		{"dot decimal", []string{"7.5"}, 7.5, nil, 1},
		{"comma decimal", []string{"7,5"}, 7.5, nil, 1},
		{"upper bound", []string{"10"}, 10, nil, 1},
		{"lower bound", []string{"0"}, 0, nil, 1},
		{"surrounding spaces", []string{"  6 "}, 6, nil, 1},
		{"out of range then valid", []string{"11", "9"}, 9, []string{MsgOutOfRange}, 2},
		{"negative then valid", []string{"-1", "1"}, 1, []string{MsgOutOfRange}, 2},
		{"not a number then valid", []string{"siete", "7"}, 7, []string{MsgNotANumber}, 2},
		{"empty then valid", []string{"", "3,25"}, 3.25, []string{MsgNotANumber}, 2},
		{
			name:         "both errors in sequence",
			input:        []string{"abc", "10.5", "8"},
			want:         8,
			wantMessages: []string{MsgNotANumber, MsgOutOfRange},
			prompts:      3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			c := New(script(tt.input...), &out)

			got, err := c.ReadGrade(context.Background())
			if err != nil {
				t.Fatalf("ReadGrade() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadGrade() = %v, want %v", got, tt.want)
			}

			output := out.String()
			if n := strings.Count(output, PromptGrade); n != tt.prompts {
				t.Errorf("prompted %d times, want %d\n%s", n, tt.prompts, output)
			}
			for _, msg := range tt.wantMessages {
				if !strings.Contains(output, msg) {
					t.Errorf("output should contain %q, got:\n%s", msg, output)
				}
			}
		})
	}
}

func TestCollector_ReadSubjectName(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(script("", "   ", "  Historia del Arte  "), &out)

	got, err := c.ReadSubjectName(context.Background())
	if err != nil {
		t.Fatalf("ReadSubjectName() error = %v", err)
	}
	if got != "Historia del Arte" {
		t.Errorf("ReadSubjectName() = %q, want %q", got, "Historia del Arte")
	}
	if n := strings.Count(out.String(), MsgEmptySubject); n != 2 {
		t.Errorf("empty-subject message shown %d times, want 2", n)
	}
}

func TestCollector_ReadContinue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     []string
		want      bool
		rejection int
	}{
		{"s", []string{"s"}, true, 0},
		{"si", []string{"si"}, true, 0},
		{"accented mixed case", []string{"Sí"}, true, 0},
		{"upper case", []string{"SI"}, true, 0},
		{"n", []string{"N"}, false, 0},
		{"no with spaces", []string{"  no  "}, false, 0},
		{"invalid then yes", []string{"x", "s"}, true, 1},
		{"invalid twice then no", []string{"yes", "", "n"}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			c := New(script(tt.input...), &out)

			got, err := c.ReadContinue(context.Background())
			if err != nil {
				t.Fatalf("ReadContinue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadContinue() = %v, want %v", got, tt.want)
			}
			if n := strings.Count(out.String(), MsgInvalidAnswer); n != tt.rejection {
				t.Errorf("invalid-answer message shown %d times, want %d", n, tt.rejection)
			}
		})
	}
}

func TestCollector_Collect(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	session := metrics.NewSession()
	c := New(script(
		"Matemáticas", "8",
		"s",
		"", "Física", "cuatro", "4,5",
		"x", "si",
		"Historia", "6.0",
		"n",
	), &out, WithMetrics(session))

	entries, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := grades.Entries{
		{Subject: "Matemáticas", Grade: 8},
		{Subject: "Física", Grade: 4.5},
		{Subject: "Historia", Grade: 6},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("Collect() = %+v, want %+v", entries, want)
	}
	if c.State() != Done {
		t.Errorf("State() = %v, want %v", c.State(), Done)
	}

	output := out.String()
	if !strings.HasPrefix(output, "\n"+SectionHeading+"\n") {
		t.Errorf("output should start with the section heading, got:\n%s", output)
	}
	if n := strings.Count(output, PromptContinue); n != 4 {
		t.Errorf("continue prompt shown %d times, want 4", n)
	}

	var text bytes.Buffer
	if err := session.WriteText(&text); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"gradecalc_entries_total 3",
		`gradecalc_input_rejections_total{field="subject",reason="empty subject"} 1`,
		`gradecalc_input_rejections_total{field="grade",reason="not a number"} 1`,
		`gradecalc_input_rejections_total{field="answer",reason="invalid answer"} 1`,
	} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("metrics should contain %q, got:\n%s", want, text.String())
		}
	}
}

func TestCollector_CollectSingleEntry(t *testing.T) {
	t.Parallel()
	c := New(script("Arte", "10", "no"), &bytes.Buffer{})

	entries, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(entries) != 1 || entries[0] != (grades.Entry{Subject: "Arte", Grade: 10}) {
		t.Errorf("Collect() = %+v", entries)
	}
}

func TestCollector_InputClosed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		input     string
		want      grades.Entries
		wantState State
	}{
		{"closed immediately", "", nil, AwaitingSubject},
		{"closed before grade", "Arte\n", nil, AwaitingGrade},
		{
			name:      "closed at continue prompt",
			input:     "Arte\n7\n",
			want:      grades.Entries{{Subject: "Arte", Grade: 7}},
			wantState: AwaitingContinue,
		},
		{
			name:      "last line without newline is still read",
			input:     "Arte\n7\nn",
			want:      grades.Entries{{Subject: "Arte", Grade: 7}},
			wantState: Done,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := New(strings.NewReader(tt.input), &bytes.Buffer{})
			entries, err := c.Collect(context.Background())

			if !reflect.DeepEqual(entries, tt.want) {
				t.Errorf("entries = %+v, want %+v", entries, tt.want)
			}
			if c.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", c.State(), tt.wantState)
			}
			if tt.wantState == Done {
				if err != nil {
					t.Errorf("Collect() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, apperrors.ErrInputClosed) {
				t.Errorf("Collect() error = %v, want ErrInputClosed", err)
			}
		})
	}
}

func TestCollector_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(script("Arte", "7", "n"), &out)
	_, err := c.Collect(ctx)
	if !apperrors.IsContextError(err) {
		t.Errorf("Collect() error = %v, want context error", err)
	}
	if strings.Contains(out.String(), PromptSubject) {
		t.Error("no prompt should be printed once the context is canceled")
	}
}

func TestCollector_WarningsUseTheme(t *testing.T) {
	defer ui.SetCurrentTheme(ui.NoColorTheme)

	var out bytes.Buffer
	c := New(script("11", "5"), &out)
	ui.SetCurrentTheme(ui.DarkTheme)
	if _, err := c.ReadGrade(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := ui.DarkTheme.Warning + MsgOutOfRange + ui.DarkTheme.Reset
	if !strings.Contains(out.String(), want) {
		t.Errorf("warning should be painted, got %q", out.String())
	}
}
