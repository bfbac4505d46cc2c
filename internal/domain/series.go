package domain

import (
	"math"
	"sort"
)

// presentValues returns the non-nil entries of a series, preserving order.
func presentValues(values []*float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// maxPresent returns the largest present value. ok is false when the series
// holds no present values.
func maxPresent(values []*float64) (max float64, ok bool) {
	for _, v := range values {
		if v == nil {
			continue
		}
		if !ok || *v > max {
			max = *v
		}
		ok = true
	}
	return max, ok
}

// minPresent returns the smallest present value. ok is false when the series
// holds no present values.
func minPresent(values []*float64) (min float64, ok bool) {
	for _, v := range values {
		if v == nil {
			continue
		}
		if !ok || *v < min {
			min = *v
		}
		ok = true
	}
	return min, ok
}

// meanPresent returns the arithmetic mean of present values. ok is false when
// the series holds no present values.
func meanPresent(values []*float64) (float64, bool) {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// medianOf returns the median of a non-empty sample set, averaging the two
// middle values for even-sized sets.
func medianOf(samples []float64) float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
