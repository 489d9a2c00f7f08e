package format

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NoneMarker replaces an empty subject list in the report.
const NoneMarker = "ninguna"

// Ellipsis marks a subject name cut to fit its column.
const Ellipsis = "…"

// Grade formats g with two decimals, e.g. 6.17.
func Grade(g float64) string {
	return strconv.FormatFloat(g, 'f', 2, 64)
}

// GradeCell formats g with two decimals right-aligned in five columns.
func GradeCell(g float64) string {
	return runewidth.FillLeft(Grade(g), 5)
}

// Subjects joins names with ", ", or returns NoneMarker when there are none.
func Subjects(names []string) string {
	if len(names) == 0 {
		return NoneMarker
	}
	return strings.Join(names, ", ")
}

// Cell fits s into exactly width terminal columns: shorter strings are
// padded on the right, longer ones truncated with an ellipsis. Width is
// measured in display cells so accented and East Asian names line up.
func Cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, Ellipsis)
	}
	return runewidth.FillRight(s, width)
}
