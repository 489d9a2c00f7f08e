// Package grades holds the domain types of a grading session and the pure
// statistics computed over them: mean, pass/fail partition and extremes.
//
// Nothing in this package performs I/O. All functions are safe to call with
// empty input and never mutate their arguments.
package grades
