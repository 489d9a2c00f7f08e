package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/format"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/ui"
)

// DefaultNameWidth is the column width of subject names in the entry list.
const DefaultNameWidth = 25

// Report headings and fixed lines.
const (
	Title          = "Calculadora de Promedios"
	HeaderLine     = "================= RESUMEN FINAL ================="
	FooterLine     = "================================================="
	NoDataMessage  = "No se ingresaron materias. No hay datos para mostrar."
	EntriesHeading = "Materias y calificaciones:"
	MeanLabel      = "Promedio general:"
	ThresholdLabel = "Umbral de aprobación:"
	PassingLabel   = "Materias aprobadas"
	FailingLabel   = "Materias reprobadas"
	ExtremesLabel  = "Extremos:"
	BestLabel      = "Mejor calificación:"
	WorstLabel     = "Peor calificación :"
)

const ruleWidth = 45

// Options tunes the report layout.
type Options struct {
	// NameWidth is the column width of subject names; values <= 0 select DefaultNameWidth.
	NameWidth int
}

func (o Options) nameWidth() int {
	if o.NameWidth <= 0 {
		return DefaultNameWidth
	}
	return o.NameWidth
}

// Render writes the summary of entries to w.
//
// With no entries only the "no data" message is written between the header
// and footer lines. Otherwise the sections are, in order: the numbered entry
// list, the mean, the threshold, passing subjects, failing subjects and,
// when both exist, the best and worst entries.
func Render(w io.Writer, entries grades.Entries, s grades.Summary, opts Options) error {
	var b strings.Builder

	b.WriteString("\n" + ui.Paint(ui.ColorTitle(), HeaderLine) + "\n")
	if len(entries) == 0 {
		b.WriteString(NoDataMessage + "\n")
		b.WriteString(ui.Paint(ui.ColorTitle(), FooterLine) + "\n\n")
		return write(w, b.String())
	}

	writeEntries(&b, entries, opts.nameWidth())

	fmt.Fprintf(&b, "\n%s %s\n", heading(MeanLabel), format.Grade(s.Mean))

	fmt.Fprintf(&b, "\n%s %s\n", heading(ThresholdLabel), format.Grade(s.Threshold))
	writeGroup(&b, PassingLabel, entries.Pick(s.Passing), ui.ColorPass())
	writeGroup(&b, FailingLabel, entries.Pick(s.Failing), ui.ColorFail())

	if s.HasExtremes() {
		best, worst := entries[s.MaxIndex], entries[s.MinIndex]
		fmt.Fprintf(&b, "\n%s\n", heading(ExtremesLabel))
		fmt.Fprintf(&b, "%s %s -> %s\n", BestLabel, ui.Paint(ui.ColorPass(), best.Subject), format.Grade(best.Grade))
		fmt.Fprintf(&b, "%s %s -> %s\n", WorstLabel, ui.Paint(ui.ColorFail(), worst.Subject), format.Grade(worst.Grade))
	}

	b.WriteString(ui.Paint(ui.ColorTitle(), FooterLine) + "\n\n")
	return write(w, b.String())
}

func writeEntries(b *strings.Builder, entries grades.Entries, width int) {
	rule := ui.Paint(ui.ColorMuted(), strings.Repeat("-", ruleWidth))

	fmt.Fprintf(b, "\n%s\n", heading(EntriesHeading))
	b.WriteString(rule + "\n")
	for i, e := range entries {
		fmt.Fprintf(b, "%2d. %s -> %s\n", i+1, format.Cell(e.Subject, width), format.GradeCell(e.Grade))
	}
	b.WriteString(rule + "\n")
}

// writeGroup writes "<label> (<count>): a, b" or the explicit none marker.
func writeGroup(b *strings.Builder, label string, names []string, color string) {
	list := format.Subjects(names)
	if len(names) > 0 {
		list = ui.Paint(color, list)
	}
	fmt.Fprintf(b, "%s (%d): %s\n", label, len(names), list)
}

func heading(s string) string {
	return ui.Paint(ui.ColorBold(), s)
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return apperrors.WrapError(err, "writing report")
}

// Banner writes the program title. Colored themes frame it with a double
// border; the plain theme writes the bare title line so redirected output
// stays a single line.
func Banner(w io.Writer) error {
	if ui.GetCurrentTheme().Name == ui.NoColorTheme.Name {
		return write(w, Title+"\n")
	}
	t := ui.GetCurrentTUITheme()
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Border).
		Padding(0, 2)
	return write(w, style.Render(Title)+"\n")
}
