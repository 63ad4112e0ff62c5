package calculator

import (
	"errors"
	"math"
	"time"
)

// TradingDaysPerYear is the scaling constant for annualizing daily figures.
const TradingDaysPerYear = 252

// DaysPerYear converts a calendar span to years, leap-adjusted.
const DaysPerYear = 365.25

// PeriodReturns computes simple per-period returns r[t] = p[t]/p[t-1] - 1.
// The first observation yields no return. Missing prices are skipped and the
// next valid price is compared against the last valid one. A non-positive
// reference price produces no return rather than an infinity.
func PeriodReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices))
	last := math.NaN()
	for _, p := range prices {
		if math.IsNaN(p) {
			continue
		}
		if !math.IsNaN(last) && last > 0 {
			returns = append(returns, p/last-1)
		}
		last = p
	}
	return returns
}

// TotalReturn computes end/start - 1.
func TotalReturn(start, end float64) (float64, error) {
	if math.IsNaN(start) || math.IsNaN(end) {
		return 0, errors.New("start or end price is missing")
	}
	if start <= 0 {
		return 0, errors.New("start price must be positive")
	}
	return end/start - 1, nil
}

// AnnualizedReturn computes the constant per-year geometric growth rate that
// compounds to totalReturn over the given span.
func AnnualizedReturn(totalReturn, years float64) (float64, error) {
	if years <= 0 {
		return 0, errors.New("span must be positive")
	}
	return math.Pow(1+totalReturn, 1/years) - 1, nil
}

// YearsBetween returns the calendar span between two dates in years.
func YearsBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	return days / DaysPerYear
}
