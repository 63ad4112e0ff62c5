package engine

import (
	"SP500Insight/internal/calculator"
	"SP500Insight/internal/model"
)

// Eligibility floors for the monthly hindsight series: about three months of
// daily history and at least three monthly points after resampling.
const (
	minHindsightObs    = 60
	minHindsightMonths = 3
)

// HindsightEntry is the monthly normalized trajectory of one hand-picked
// symbol, with a reduced metrics block (no volatility, no market cap).
type HindsightEntry struct {
	Symbol           string
	Name             string
	Sector           string
	Industry         string
	Trajectory       []model.TrajectoryPoint
	TotalReturn      float64
	AnnualizedReturn float64
	Years            float64
}

// HindsightSeries resamples each requested symbol to monthly observations
// (first valid price of each calendar month) and normalizes the result.
// Ineligible symbols are skipped silently; entries keep the requested order.
func (e *Engine) HindsightSeries(series []model.PriceSeries, companies map[string]model.CompanyInfo, symbols []string) []HindsightEntry {
	bySymbol := make(map[string]model.PriceSeries, len(series))
	for _, s := range series {
		bySymbol[s.Symbol] = s
	}

	var entries []HindsightEntry
	for _, sym := range symbols {
		s, ok := bySymbol[sym]
		if !ok || len(s.Bars) < minHindsightObs {
			continue
		}
		company, ok := companies[sym]
		if !ok {
			continue
		}

		prices := selectPrices(s.Bars)
		obs := make([]calculator.Observation, len(s.Bars))
		for i, b := range s.Bars {
			obs[i] = calculator.Observation{Date: b.Date, Price: prices[i]}
		}

		monthly := calculator.ResampleMonthlyFirst(obs)
		if len(monthly) < minHindsightMonths {
			continue
		}

		startPrice := monthly[0].Price
		endPrice := monthly[len(monthly)-1].Price
		totalReturn, err := calculator.TotalReturn(startPrice, endPrice)
		if err != nil {
			continue
		}
		years := calculator.YearsBetween(monthly[0].Date, monthly[len(monthly)-1].Date)
		annualized, err := calculator.AnnualizedReturn(totalReturn, years)
		if err != nil {
			continue
		}

		entries = append(entries, HindsightEntry{
			Symbol:           sym,
			Name:             company.Name,
			Sector:           company.Sector,
			Industry:         company.Industry,
			Trajectory:       calculator.NormalizedTrajectory(monthly),
			TotalReturn:      totalReturn,
			AnnualizedReturn: annualized,
			Years:            years,
		})
	}
	return entries
}
