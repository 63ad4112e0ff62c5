package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"SP500Insight/internal/calculator"
	"SP500Insight/internal/model"
)

// BenchmarkName labels the synthetic market-average series.
const BenchmarkName = "S&P 500 Index"

// CrossSectionalMean builds the synthetic market series: for each date, the
// unweighted mean adjusted close across every symbol with a value on that
// date. All symbols participate, including ones the per-symbol pass later
// skips. Dates with no valid price at all are dropped.
func CrossSectionalMean(series []model.PriceSeries) []calculator.Observation {
	type acc struct {
		sum   float64
		count int
	}
	byDate := make(map[time.Time]*acc)
	for _, s := range series {
		for _, b := range s.Bars {
			if math.IsNaN(b.AdjClose) {
				continue
			}
			a, ok := byDate[b.Date]
			if !ok {
				a = &acc{}
				byDate[b.Date] = a
			}
			a.sum += b.AdjClose
			a.count++
		}
	}

	obs := make([]calculator.Observation, 0, len(byDate))
	for d, a := range byDate {
		obs = append(obs, calculator.Observation{Date: d, Price: a.sum / float64(a.count)})
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
	return obs
}

// Benchmark computes the market-average summary with the same algorithm as a
// single symbol. Fewer than two benchmark dates is fatal: the core cannot
// produce a meaningful result from that.
func (e *Engine) Benchmark(series []model.PriceSeries) (*model.BenchmarkSummary, error) {
	obs := CrossSectionalMean(series)
	if len(obs) < 2 {
		return nil, fmt.Errorf("benchmark series has %d dates, need at least 2", len(obs))
	}

	prices := make([]float64, len(obs))
	for i, o := range obs {
		prices[i] = o.Price
	}
	returns := calculator.PeriodReturns(prices)

	startPrice, endPrice := prices[0], prices[len(prices)-1]
	totalReturn, err := calculator.TotalReturn(startPrice, endPrice)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}

	startDate, endDate := obs[0].Date, obs[len(obs)-1].Date
	years := calculator.YearsBetween(startDate, endDate)
	annualized, err := calculator.AnnualizedReturn(totalReturn, years)
	if err != nil {
		return nil, fmt.Errorf("benchmark: %w", err)
	}

	return &model.BenchmarkSummary{
		Name: BenchmarkName,
		Trajectory: []model.TrajectoryPoint{
			{Date: startDate, Price: startPrice, Normalized: 100.0},
			{Date: endDate, Price: endPrice, Normalized: 100 * (1 + totalReturn)},
		},
		Metrics: model.SymbolMetrics{
			TotalReturn:      totalReturn,
			AnnualizedReturn: annualized,
			Volatility:       calculator.AnnualizedVolatility(returns),
			Years:            years,
		},
	}, nil
}
