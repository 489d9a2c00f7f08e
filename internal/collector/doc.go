// Package collector reads subject names and grades from a line-oriented
// interactive stream. Each prompt repeats until the typed line is valid, so
// the only ways out of a collection loop are a negative answer to the
// continue prompt, the end of the input stream or a canceled context.
package collector
