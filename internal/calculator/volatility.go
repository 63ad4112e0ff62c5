package calculator

import "math"

// StdDev computes the sample standard deviation (n-1 denominator).
// Returns 0 for fewer than two values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// AnnualizedVolatility scales the standard deviation of daily returns to a
// one-year horizon. Defined as 0 when fewer than two returns exist.
func AnnualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	return StdDev(returns) * math.Sqrt(TradingDaysPerYear)
}
