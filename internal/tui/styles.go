package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/gradecalc/internal/ui"
)

// Style variables for the entry form.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle   lipgloss.Style
	titleStyle   lipgloss.Style
	counterStyle lipgloss.Style
	promptStyle  lipgloss.Style
	rowStyle     lipgloss.Style
	passStyle    lipgloss.Style
	failStyle    lipgloss.Style
	errorStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again by Form.Collect once the theme is chosen.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	counterStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	promptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text)

	rowStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	passStyle = lipgloss.NewStyle().
		Foreground(t.Pass)

	failStyle = lipgloss.NewStyle().
		Foreground(t.Fail)

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Fail)
}
