package calculator

import (
	"math"
	"sort"
)

// Histogram bins a set of values over a fixed range. Bins holds the left edge
// of each bin; values outside [lo, hi] are excluded from the counts but still
// contribute to the summary statistics.
type Histogram struct {
	Bins   []float64
	Counts []int
	Mean   float64
	Median float64
	Std    float64
}

// BuildHistogram computes an n-bin histogram over [lo, hi] with equal-width
// bins. The rightmost bin includes its upper edge.
func BuildHistogram(values []float64, lo, hi float64, n int) Histogram {
	width := (hi - lo) / float64(n)
	h := Histogram{
		Bins:   make([]float64, n),
		Counts: make([]int, n),
		Mean:   math.NaN(),
		Median: math.NaN(),
		Std:    math.NaN(),
	}
	for i := range h.Bins {
		h.Bins[i] = lo + float64(i)*width
	}

	for _, v := range values {
		if math.IsNaN(v) || v < lo || v > hi {
			continue
		}
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1 // upper edge lands in the last bin
		}
		h.Counts[idx]++
	}

	valid := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return h
	}

	var sum float64
	for _, v := range valid {
		sum += v
	}
	h.Mean = sum / float64(len(valid))
	if len(valid) >= 2 {
		h.Std = StdDev(valid)
	}

	sorted := append([]float64(nil), valid...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		h.Median = sorted[mid]
	} else {
		h.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return h
}
