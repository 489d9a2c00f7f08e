package grades

// Summary is the set of statistics derived from a grading session.
type Summary struct {
	// Mean is the arithmetic mean of all grades, 0 when there are none.
	Mean float64
	// Passing holds the indices of grades >= Threshold, in increasing order.
	Passing []int
	// Failing holds the indices of grades < Threshold, in increasing order.
	Failing []int
	// MaxIndex and MinIndex point at the best and worst grades, or NoIndex.
	MaxIndex int
	MinIndex int
	// Threshold is the pass mark the partition was computed against.
	Threshold float64
}

// HasExtremes reports whether both extreme indices are valid.
func (s Summary) HasExtremes() bool {
	return s.MaxIndex != NoIndex && s.MinIndex != NoIndex
}

// PassingRatio returns the fraction of passing entries, 0 when there are none.
func (s Summary) PassingRatio() float64 {
	total := len(s.Passing) + len(s.Failing)
	if total == 0 {
		return 0
	}
	return float64(len(s.Passing)) / float64(total)
}

// EmptySummary returns the summary of a session without entries.
func EmptySummary(threshold float64) Summary {
	return Summary{
		Passing:   []int{},
		Failing:   []int{},
		MaxIndex:  NoIndex,
		MinIndex:  NoIndex,
		Threshold: threshold,
	}
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Partition splits the indices of values into passing (v >= threshold) and
// failing ones. Both slices keep the original relative order.
func Partition(values []float64, threshold float64) (passing, failing []int) {
	passing = []int{}
	failing = []int{}
	for i, v := range values {
		if v >= threshold {
			passing = append(passing, i)
		} else {
			failing = append(failing, i)
		}
	}
	return passing, failing
}

// FindExtremes returns the indices of the maximum and minimum values.
// On ties the lowest index wins. An empty slice yields (NoIndex, NoIndex).
func FindExtremes(values []float64) (maxIdx, minIdx int) {
	if len(values) == 0 {
		return NoIndex, NoIndex
	}
	maxIdx, minIdx = 0, 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[maxIdx] {
			maxIdx = i
		}
		if values[i] < values[minIdx] {
			minIdx = i
		}
	}
	return maxIdx, minIdx
}

// Summarize computes every statistic for entries against threshold.
func Summarize(entries Entries, threshold float64) Summary {
	if len(entries) == 0 {
		return EmptySummary(threshold)
	}
	values := entries.Values()
	passing, failing := Partition(values, threshold)
	maxIdx, minIdx := FindExtremes(values)
	return Summary{
		Mean:      Mean(values),
		Passing:   passing,
		Failing:   failing,
		MaxIndex:  maxIdx,
		MinIndex:  minIdx,
		Threshold: threshold,
	}
}
