// Package timeline normalizes raw failure-event times into the single
// strictly positive, ascending sequence the analysis packages operate on.
// It handles both absolute failure times and failure inter-arrival times,
// and converts between the two representations.
package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/repairable/errs"
)

// SortedAbsolute validates and sorts absolute failure times into a fresh
// ascending slice. The input is not mutated.
//
// Returns errs.ErrNoData for an empty input and errs.ErrNonPositiveTime if
// any value is zero, negative, NaN or infinite.
func SortedAbsolute(times []float64) ([]float64, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: failure times are required", errs.ErrNoData)
	}

	sorted := make([]float64, len(times))
	copy(sorted, times)
	for _, t := range sorted {
		if !math.IsInf(t, 0) && !math.IsNaN(t) && t > 0 {
			continue
		}

		return nil, fmt.Errorf("%w: got %v", errs.ErrNonPositiveTime, t)
	}
	sort.Float64s(sorted)

	return sorted, nil
}

// FromIntervals validates inter-arrival times and returns both the interval
// slice (copied) and the cumulative absolute times they imply.
func FromIntervals(intervals []float64) (ti []float64, cumulative []float64, err error) {
	if len(intervals) == 0 {
		return nil, nil, fmt.Errorf("%w: inter-arrival times are required", errs.ErrNoData)
	}

	ti = make([]float64, len(intervals))
	cumulative = make([]float64, len(intervals))
	sum := 0.0
	for i, d := range intervals {
		if math.IsInf(d, 0) || math.IsNaN(d) || d <= 0 {
			return nil, nil, fmt.Errorf("%w: got %v", errs.ErrNonPositiveTime, d)
		}
		ti[i] = d
		sum += d
		cumulative[i] = sum
	}

	return ti, cumulative, nil
}

// Intervals converts sorted absolute failure times into inter-arrival times.
// The first interval is measured from time zero.
func Intervals(sorted []float64) []float64 {
	ti := make([]float64, len(sorted))
	prev := 0.0
	for i, t := range sorted {
		ti[i] = t - prev
		prev = t
	}

	return ti
}

// Sum returns the total of the given durations.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}
