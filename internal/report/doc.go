// Package report renders the final summary of a grading session as
// human-readable text. Rendering never mutates its inputs; the only side
// effect is writing to the given writer.
package report
