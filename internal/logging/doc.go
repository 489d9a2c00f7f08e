// Package logging provides a unified logging interface for the grade calculator.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
//
// Log output is diagnostic only and always goes to a separate writer (stderr
// in production) so it never mixes with prompts or the final report.
package logging
