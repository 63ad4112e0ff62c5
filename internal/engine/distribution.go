package engine

import (
	"SP500Insight/internal/calculator"
	"SP500Insight/internal/model"
)

// Histogram bounds for the annual-returns distribution: 20 bins spanning
// -50% to +50%.
const (
	distributionLo   = -0.5
	distributionHi   = 0.5
	distributionBins = 20
)

// ReturnsDistribution computes the histogram of per-symbol annual returns.
// Each symbol contributes the return between the last adjusted closes of
// consecutive calendar years; gaps in coverage contribute nothing.
func (e *Engine) ReturnsDistribution(series []model.PriceSeries) calculator.Histogram {
	var returns []float64
	for _, s := range series {
		obs := make([]calculator.Observation, len(s.Bars))
		for i, b := range s.Bars {
			obs[i] = calculator.Observation{Date: b.Date, Price: b.AdjClose}
		}
		yearly := calculator.ResampleYearlyLast(obs)
		for i := 1; i < len(yearly); i++ {
			if yearly[i].Date.Year() != yearly[i-1].Date.Year()+1 {
				continue
			}
			if yearly[i-1].Price <= 0 {
				continue
			}
			returns = append(returns, yearly[i].Price/yearly[i-1].Price-1)
		}
	}
	return calculator.BuildHistogram(returns, distributionLo, distributionHi, distributionBins)
}
