package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/gradecalc/internal/format"
	"github.com/agbru/gradecalc/internal/report"
)

// HeaderModel renders the top bar: title, entry count and elapsed time.
type HeaderModel struct {
	startTime time.Time
	entries   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel() HeaderModel {
	return HeaderModel{startTime: time.Now()}
}

// SetEntries updates the number of collected entries.
func (h *HeaderModel) SetEntries(n int) {
	h.entries = n
}

// View renders the header.
func (h HeaderModel) View() string {
	title := titleStyle.Render(report.Title)
	counter := counterStyle.Render(fmt.Sprintf("%d materias · %s",
		h.entries, format.FormatExecutionDuration(time.Since(h.startTime))))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", counter)
}
