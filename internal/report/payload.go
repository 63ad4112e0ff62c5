package report

import (
	"fmt"
	"math"

	"SP500Insight/internal/calculator"
	"SP500Insight/internal/engine"
	"SP500Insight/internal/model"
)

// dateLayout is the calendar-date form used in every emitted record.
const dateLayout = "2006-01-02"

// PointJSON is one trajectory observation in an emitted payload.
type PointJSON struct {
	Date            string  `json:"date"`
	Price           float64 `json:"price"`
	NormalizedPrice float64 `json:"normalizedPrice"`
}

// MetricsJSON is the full metrics block of one symbol. MarketCap is omitted
// on the benchmark record, which has none.
type MetricsJSON struct {
	TotalReturn      float64  `json:"totalReturn"`
	AnnualizedReturn float64  `json:"annualizedReturn"`
	Volatility       float64  `json:"volatility"`
	Years            float64  `json:"years"`
	MarketCap        *float64 `json:"marketCap,omitempty"`
}

// StockJSON is one symbol's record in the all-stocks comparison payload.
type StockJSON struct {
	Name     string      `json:"name"`
	Sector   string      `json:"sector"`
	Industry string      `json:"industry"`
	Data     []PointJSON `json:"data"`
	Metrics  MetricsJSON `json:"metrics"`
}

// BenchmarkJSON is the top-level market record, same shape minus the
// sector/industry/marketCap fields.
type BenchmarkJSON struct {
	Name    string      `json:"name"`
	Data    []PointJSON `json:"data"`
	Metrics MetricsJSON `json:"metrics"`
}

// ComparisonPayload is the summary record for every eligible symbol plus the
// benchmark, emitted as comparison_data.json.
type ComparisonPayload struct {
	Stocks map[string]StockJSON `json:"stocks"`
	SP500  BenchmarkJSON        `json:"sp500"`
}

// BuildComparisonPayload shapes the engine result for emission. Symbols with
// any non-finite aggregate are excluded; a non-finite benchmark is fatal
// since the whole record would be meaningless.
func BuildComparisonPayload(result *engine.Result) (*ComparisonPayload, error) {
	m := result.Benchmark.Metrics
	if !finiteAll(m.TotalReturn, m.AnnualizedReturn, m.Volatility, m.Years) {
		return nil, fmt.Errorf("benchmark metrics are not finite")
	}

	payload := &ComparisonPayload{
		Stocks: make(map[string]StockJSON, len(result.Symbols)),
		SP500: BenchmarkJSON{
			Name: result.Benchmark.Name,
			Data: points(result.Benchmark.Trajectory),
			Metrics: MetricsJSON{
				TotalReturn:      m.TotalReturn,
				AnnualizedReturn: m.AnnualizedReturn,
				Volatility:       m.Volatility,
				Years:            m.Years,
			},
		},
	}

	for _, s := range result.Symbols {
		sm := s.Metrics
		if !finiteAll(sm.TotalReturn, sm.AnnualizedReturn, sm.Volatility, sm.Years, sm.MarketCap) {
			continue
		}
		mc := sm.MarketCap
		payload.Stocks[s.Symbol] = StockJSON{
			Name:     s.Name,
			Sector:   s.Sector,
			Industry: s.Industry,
			Data:     points(s.Trajectory),
			Metrics: MetricsJSON{
				TotalReturn:      sm.TotalReturn,
				AnnualizedReturn: sm.AnnualizedReturn,
				Volatility:       sm.Volatility,
				Years:            sm.Years,
				MarketCap:        &mc,
			},
		}
	}
	return payload, nil
}

// SeriesJSON is one named daily trajectory in the target comparison payload.
type SeriesJSON struct {
	Name string      `json:"name"`
	Data []PointJSON `json:"data"`
}

// TargetPayload is the target-vs-market record, emitted as
// target_comparison.json.
type TargetPayload struct {
	TargetStock SeriesJSON `json:"target_stock"`
	SP500       SeriesJSON `json:"sp500"`
}

// BuildTargetPayload shapes a daily comparison for emission.
func BuildTargetPayload(cmp *engine.Comparison) *TargetPayload {
	return &TargetPayload{
		TargetStock: SeriesJSON{Name: cmp.Target.Name, Data: points(cmp.Target.Points)},
		SP500:       SeriesJSON{Name: cmp.Market.Name, Data: points(cmp.Market.Points)},
	}
}

// HindsightMetricsJSON is the reduced metrics block of a hindsight entry.
type HindsightMetricsJSON struct {
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	Years            float64 `json:"years"`
}

// HindsightStockJSON is one monthly-resampled symbol record.
type HindsightStockJSON struct {
	Name     string               `json:"name"`
	Sector   string               `json:"sector"`
	Industry string               `json:"industry"`
	Data     []PointJSON          `json:"data"`
	Metrics  HindsightMetricsJSON `json:"metrics"`
}

// BuildHindsightPayload shapes hindsight entries for emission as
// hindsight_stocks.json.
func BuildHindsightPayload(entries []engine.HindsightEntry) map[string]HindsightStockJSON {
	payload := make(map[string]HindsightStockJSON, len(entries))
	for _, e := range entries {
		if !finiteAll(e.TotalReturn, e.AnnualizedReturn, e.Years) {
			continue
		}
		payload[e.Symbol] = HindsightStockJSON{
			Name:     e.Name,
			Sector:   e.Sector,
			Industry: e.Industry,
			Data:     points(e.Trajectory),
			Metrics: HindsightMetricsJSON{
				TotalReturn:      e.TotalReturn,
				AnnualizedReturn: e.AnnualizedReturn,
				Years:            e.Years,
			},
		}
	}
	return payload
}

// DistributionPayload is the annual-returns histogram, emitted as
// returns_distribution.json. Undefined statistics serialize as null.
type DistributionPayload struct {
	Bins   []float64 `json:"bins"`
	Counts []int     `json:"counts"`
	Mean   *float64  `json:"mean"`
	Median *float64  `json:"median"`
	Std    *float64  `json:"std"`
}

// BuildDistributionPayload shapes a histogram for emission.
func BuildDistributionPayload(h calculator.Histogram) *DistributionPayload {
	return &DistributionPayload{
		Bins:   h.Bins,
		Counts: h.Counts,
		Mean:   finiteOrNil(h.Mean),
		Median: finiteOrNil(h.Median),
		Std:    finiteOrNil(h.Std),
	}
}

func points(traj []model.TrajectoryPoint) []PointJSON {
	out := make([]PointJSON, 0, len(traj))
	for _, p := range traj {
		if !finiteAll(p.Price, p.Normalized) {
			continue
		}
		out = append(out, PointJSON{
			Date:            p.Date.Format(dateLayout),
			Price:           p.Price,
			NormalizedPrice: p.Normalized,
		})
	}
	return out
}

func finiteAll(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
