package engine

import (
	"sort"

	"SP500Insight/internal/model"
)

// bubbleSectors are the sectors historically prone to boom-bust cycles,
// weighted into the trap score.
var bubbleSectors = map[string]bool{
	"Technology":             true,
	"Communication Services": true,
	"Consumer Cyclical":      true,
}

// trap score component weights
const (
	trapWeightReturn    = 0.3
	trapWeightVol       = 0.4
	trapWeightMarketCap = 0.2
	trapWeightSector    = 0.1
	trapCapScale        = 1e11
)

// ScreenerRow is one symbol's relative-to-benchmark analytics.
type ScreenerRow struct {
	Symbol             string
	Name               string
	Sector             string
	Industry           string
	AnnualizedReturn   float64
	Volatility         float64
	TotalReturn        float64
	Years              float64
	MarketCap          float64
	OutperformedMarket bool
	ReturnVsMarket     float64
	VolatilityVsMarket float64
	RiskAdjustedReturn float64
	TrapScore          float64
}

// Screen ranks the eligible symbols against the benchmark: who beat the
// market, by how much, at what volatility cost, and how strongly each one
// resembles a hindsight trap (attractive return, boom-bust volatility,
// smaller cap, bubble-prone sector). Rows come back sorted by annualized
// return, best first; ties break on symbol for determinism.
func Screen(symbols []model.SymbolSummary, benchmark model.BenchmarkSummary) []ScreenerRow {
	benchReturn := benchmark.Metrics.AnnualizedReturn
	benchVol := benchmark.Metrics.Volatility

	rows := make([]ScreenerRow, 0, len(symbols))
	for _, s := range symbols {
		m := s.Metrics
		row := ScreenerRow{
			Symbol:             s.Symbol,
			Name:               s.Name,
			Sector:             s.Sector,
			Industry:           s.Industry,
			AnnualizedReturn:   m.AnnualizedReturn,
			Volatility:         m.Volatility,
			TotalReturn:        m.TotalReturn,
			Years:              m.Years,
			MarketCap:          m.MarketCap,
			OutperformedMarket: m.AnnualizedReturn > benchReturn,
			ReturnVsMarket:     m.AnnualizedReturn - benchReturn,
			VolatilityVsMarket: m.Volatility - benchVol,
		}
		if m.Volatility > 0 {
			row.RiskAdjustedReturn = m.AnnualizedReturn / m.Volatility
		}
		row.TrapScore = trapScore(s, benchReturn, benchVol)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AnnualizedReturn != rows[j].AnnualizedReturn {
			return rows[i].AnnualizedReturn > rows[j].AnnualizedReturn
		}
		return rows[i].Symbol < rows[j].Symbol
	})
	return rows
}

func trapScore(s model.SymbolSummary, benchReturn, benchVol float64) float64 {
	m := s.Metrics
	var score float64
	if benchReturn != 0 {
		score += trapWeightReturn * (m.AnnualizedReturn / benchReturn)
	}
	if benchVol > 0 {
		score += trapWeightVol * (m.Volatility / benchVol)
	}
	if m.MarketCap > 0 {
		score += trapWeightMarketCap / (m.MarketCap / trapCapScale)
	}
	if bubbleSectors[s.Sector] {
		score += trapWeightSector
	}
	return score
}
