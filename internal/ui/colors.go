package ui

// Color accessors read the active theme so callers never cache escape codes.

// ColorTitle returns the escape code for banners and rules.
func ColorTitle() string { return GetCurrentTheme().Title }

// ColorHeading returns the escape code for section headings.
func ColorHeading() string { return GetCurrentTheme().Heading }

// ColorPass returns the escape code for passing subjects.
func ColorPass() string { return GetCurrentTheme().Pass }

// ColorFail returns the escape code for failing subjects.
func ColorFail() string { return GetCurrentTheme().Fail }

// ColorWarning returns the escape code for re-prompt messages.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorMuted returns the escape code for secondary text.
func ColorMuted() string { return GetCurrentTheme().Muted }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// Paint wraps s in color and a reset. With the no-color theme s is returned unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
