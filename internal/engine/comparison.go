package engine

import (
	"fmt"

	"SP500Insight/internal/calculator"
	"SP500Insight/internal/model"
)

// ComparisonSeries is one full daily trajectory in a target-vs-market
// comparison, rebased so the first valid observation equals 100.
type ComparisonSeries struct {
	Name   string
	Points []model.TrajectoryPoint
}

// Comparison holds the target stock's daily trajectory next to the market's.
type Comparison struct {
	Target ComparisonSeries
	Market ComparisonSeries
}

// Comparison builds the daily comparison payload for one target symbol
// against the cross-sectional market mean. Points with a missing adjusted
// close are dropped rather than emitted as gaps.
func (e *Engine) Comparison(series []model.PriceSeries, companies map[string]model.CompanyInfo, target string) (*Comparison, error) {
	var targetSeries *model.PriceSeries
	for i := range series {
		if series[i].Symbol == target {
			targetSeries = &series[i]
			break
		}
	}
	if targetSeries == nil {
		return nil, fmt.Errorf("target symbol %q not present in price table", target)
	}

	obs := make([]calculator.Observation, len(targetSeries.Bars))
	for i, b := range targetSeries.Bars {
		obs[i] = calculator.Observation{Date: b.Date, Price: b.AdjClose}
	}
	targetPoints := calculator.NormalizedTrajectory(obs)
	if len(targetPoints) == 0 {
		return nil, fmt.Errorf("target symbol %q has no valid prices", target)
	}

	name := target
	if c, ok := companies[target]; ok {
		name = c.Name
	}

	marketPoints := calculator.NormalizedTrajectory(CrossSectionalMean(series))

	return &Comparison{
		Target: ComparisonSeries{Name: name, Points: targetPoints},
		Market: ComparisonSeries{Name: "S&P 500", Points: marketPoints},
	}, nil
}
