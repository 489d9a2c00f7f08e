package ui

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme defines a color scheme for the line-mode output.
// Each field contains an ANSI escape code for a role in the report.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Title colors banners and section rules.
	Title string
	// Heading colors section headings such as "Promedio general".
	Heading string
	// Pass colors passing subjects and the best grade.
	Pass string
	// Fail colors failing subjects and the worst grade.
	Fail string
	// Warning colors re-prompt messages.
	Warning string
	// Muted is used for secondary text like row numbers.
	Muted string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Title:   "\033[38;5;39m",  // Bright blue
		Heading: "\033[38;5;141m", // Purple
		Pass:    "\033[38;5;82m",  // Bright green
		Fail:    "\033[38;5;196m", // Red
		Warning: "\033[38;5;220m", // Yellow
		Muted:   "\033[38;5;245m", // Grey
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Title:   "\033[38;5;27m",  // Dark blue
		Heading: "\033[38;5;54m",  // Dark purple
		Pass:    "\033[38;5;28m",  // Dark green
		Fail:    "\033[38;5;124m", // Dark red
		Warning: "\033[38;5;130m", // Orange
		Muted:   "\033[38;5;240m", // Dark grey
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// OrangeTheme is an orange-dominant dark theme matching the TUI palette.
	OrangeTheme = Theme{
		Name:    "orange",
		Title:   "\033[38;5;208m", // Orange
		Heading: "\033[38;5;214m", // Light orange
		Pass:    "\033[38;5;82m",
		Fail:    "\033[38;5;196m",
		Warning: "\033[38;5;214m",
		Muted:   "\033[38;5;245m",
		Bold:    "\033[1m",
		Reset:   "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set, --no-color is given or stdout is not a terminal.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the names accepted by --theme.
var ThemeNames = []string{"dark", "light", "orange", "none"}

// TUITheme defines lipgloss-compatible colors for the TUI form.
type TUITheme struct {
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Pass   lipgloss.TerminalColor
	Fail   lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Text:   lipgloss.Color("#E0E0E0"),
		Border: lipgloss.Color("#FF6600"),
		Accent: lipgloss.Color("#FF8C00"),
		Pass:   lipgloss.Color("#9ece6a"),
		Fail:   lipgloss.Color("#FF4444"),
		Dim:    lipgloss.Color("#666666"),
	}

	// NoColorTUITheme renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
		Pass:   lipgloss.NoColor{},
		Fail:   lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI theme matching the currently active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

func themeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "orange":
		return OrangeTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme selects the active theme. Colors are disabled when noColor is
// set, when NO_COLOR is present in the environment (https://no-color.org/)
// or when out is not a terminal.
//
// Parameters:
//   - name: The preferred theme name.
//   - noColor: If true, disables all color output regardless of environment.
//   - out: The writer the report goes to.
func InitTheme(name string, noColor bool, out io.Writer) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor || !IsTerminal(out) {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(name)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
