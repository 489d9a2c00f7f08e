// Package tui provides a full-screen entry form for a grading session.
//
// The form runs the same subject → grade → continue conversation as the
// line collector and accepts exactly the same answers; only the
// presentation differs.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/gradecalc/internal/collector"
	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/format"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/logging"
	"github.com/agbru/gradecalc/internal/metrics"
	"github.com/agbru/gradecalc/internal/report"
)

// visibleRows is the number of most recent entries listed in the form.
const visibleRows = 8

// Model is the bubbletea model of the entry form.
type Model struct {
	header  HeaderModel
	input   textinput.Model
	help    help.Model
	keymap  KeyMap
	state   collector.State
	entries grades.Entries
	subject string
	message string
	aborted bool
	// threshold only colors the listed grades; it never affects acceptance.
	threshold float64
	nameWidth int
	metrics   *metrics.Session
	logger    logging.Logger
	width     int
}

// NewModel creates a form waiting for the first subject. Subjects are listed
// in a nameWidth column; values <= 0 select report.DefaultNameWidth.
func NewModel(threshold float64, nameWidth int, m *metrics.Session, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.Nop()
	}
	if nameWidth <= 0 {
		nameWidth = report.DefaultNameWidth
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Focus()

	return Model{
		header:    NewHeaderModel(),
		input:     ti,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		state:     collector.AwaitingSubject,
		threshold: threshold,
		nameWidth: nameWidth,
		metrics:   m,
		logger:    logger,
	}
}

// Entries returns the entries accepted so far.
func (m Model) Entries() grades.Entries { return m.entries }

// State returns the current conversation state.
func (m Model) State() collector.State { return m.state }

// Aborted reports whether the user left the form before finishing.
func (m Model) Aborted() bool { return m.aborted }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Submit):
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the typed answer for the current state.
func (m Model) submit() (tea.Model, tea.Cmd) {
	answer := m.input.Value()
	var err error

	switch m.state {
	case collector.AwaitingSubject:
		var subject string
		if subject, err = collector.ParseSubject(answer); err == nil {
			m.subject = subject
			m.state = m.state.Advance(true)
		}

	case collector.AwaitingGrade:
		var grade float64
		if grade, err = collector.ParseGrade(answer); err == nil {
			entry := grades.Entry{Subject: m.subject, Grade: grade}
			m.entries = append(m.entries, entry)
			m.subject = ""
			m.header.SetEntries(len(m.entries))
			m.metrics.ObserveEntry(entry)
			m.logger.Debug("entry accepted",
				logging.String("subject", entry.Subject),
				logging.Float64("grade", entry.Grade),
				logging.Int("entries", len(m.entries)))
			m.state = m.state.Advance(true)
		}

	case collector.AwaitingContinue:
		var more bool
		if more, err = collector.ParseContinue(answer); err == nil {
			m.state = m.state.Advance(more)
		}
	}

	if err != nil {
		m.reject(err)
		return m, nil
	}

	m.message = ""
	m.input.SetValue("")
	if m.state == collector.Done {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) reject(err error) {
	var validationErr apperrors.ValidationError
	if errors.As(err, &validationErr) {
		m.message = validationErr.Message
		m.metrics.ObserveRejection(validationErr.Field, validationErr.Reason())
		m.logger.Debug("input rejected",
			logging.String("field", validationErr.Field),
			logging.String("reason", validationErr.Reason()),
			logging.String("state", m.state.String()))
	} else {
		m.message = err.Error()
	}
	m.input.SetValue("")
}

// View renders the form.
func (m Model) View() string {
	if m.state == collector.Done {
		return ""
	}

	var rows []string
	start := 0
	if len(m.entries) > visibleRows {
		start = len(m.entries) - visibleRows
	}
	for i := start; i < len(m.entries); i++ {
		e := m.entries[i]
		style := passStyle
		if e.Grade < m.threshold {
			style = failStyle
		}
		rows = append(rows, rowStyle.Render(fmt.Sprintf("%2d. %s -> ", i+1, format.Cell(e.Subject, m.nameWidth)))+
			style.Render(format.GradeCell(e.Grade)))
	}
	if m.subject != "" {
		rows = append(rows, rowStyle.Render(fmt.Sprintf("%2d. %s", len(m.entries)+1, m.subject)))
	}

	var b strings.Builder
	if len(rows) > 0 {
		b.WriteString(strings.Join(rows, "\n"))
		b.WriteString("\n\n")
	}
	b.WriteString(promptStyle.Render(strings.TrimSpace(m.state.Prompt())))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.message))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		panelStyle.Render(b.String()),
		m.help.View(m.keymap),
	)
}

// Form collects entries with the full-screen form.
type Form struct {
	In        io.Reader
	Out       io.Writer
	Threshold float64
	NameWidth int
	Metrics   *metrics.Session
	Logger    logging.Logger
}

// Collect runs the form until the continue prompt is answered negatively.
// Leaving the form early returns the entries accepted so far and an error
// wrapping context.Canceled.
func (f Form) Collect(ctx context.Context) (grades.Entries, error) {
	initTUIStyles()

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if f.In != nil {
		opts = append(opts, tea.WithInput(f.In))
	}
	if f.Out != nil {
		opts = append(opts, tea.WithOutput(f.Out))
	}

	p := tea.NewProgram(NewModel(f.Threshold, f.NameWidth, f.Metrics, f.Logger), opts...)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, apperrors.WrapError(err, "running entry form")
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model %T", final)
	}
	if m.Aborted() {
		return m.Entries(), apperrors.WrapError(context.Canceled, "entry form closed")
	}
	return m.Entries(), nil
}
