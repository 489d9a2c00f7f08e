package grades

// Grade bounds and the default pass mark. Both bounds are inclusive.
const (
	MinGrade         = 0.0
	MaxGrade         = 10.0
	DefaultThreshold = 5.0
)

// NoIndex marks an extreme that does not exist because no entries were collected.
const NoIndex = -1

// Entry is one collected (subject, grade) pair.
type Entry struct {
	// Subject is the trimmed, non-empty subject name.
	Subject string
	// Grade lies within [MinGrade, MaxGrade].
	Grade float64
}

// Entries is an ordered list of entries in the order they were collected.
type Entries []Entry

// Subjects returns the subject names in collection order.
func (e Entries) Subjects() []string {
	names := make([]string, len(e))
	for i, entry := range e {
		names[i] = entry.Subject
	}
	return names
}

// Values returns the grades in collection order.
func (e Entries) Values() []float64 {
	values := make([]float64, len(e))
	for i, entry := range e {
		values[i] = entry.Grade
	}
	return values
}

// Pick returns the subject names at the given indices, in the order given.
func (e Entries) Pick(indices []int) []string {
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		names = append(names, e[i].Subject)
	}
	return names
}

// InRange reports whether g is an acceptable grade.
func InRange(g float64) bool {
	return g >= MinGrade && g <= MaxGrade
}
