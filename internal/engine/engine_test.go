package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SP500Insight/internal/model"
)

// linearSeries builds a daily price series whose adjusted close moves
// linearly from startPrice to endPrice over spanDays calendar days.
func linearSeries(symbol string, start time.Time, spanDays int, startPrice, endPrice float64) model.PriceSeries {
	bars := make([]model.PriceBar, spanDays+1)
	for i := 0; i <= spanDays; i++ {
		p := startPrice + (endPrice-startPrice)*float64(i)/float64(spanDays)
		bars[i] = model.PriceBar{
			Symbol:   symbol,
			Date:     start.AddDate(0, 0, i),
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return model.PriceSeries{Symbol: symbol, Bars: bars}
}

func testCompanies() map[string]model.CompanyInfo {
	return map[string]model.CompanyInfo{
		"AAA": {Symbol: "AAA", Name: "Alpha Corp", Sector: "Technology", Industry: "Software", MarketCap: "1.2T"},
		"BBB": {Symbol: "BBB", Name: "Beta Inc", Sector: "Utilities", Industry: "Power", MarketCap: ""},
	}
}

func TestRun_EndToEndScenario(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []model.PriceSeries{
		linearSeries("AAA", start, 730, 100, 200), // doubles over 730 days
		linearSeries("BBB", start, 365, 50, 55),   // +10% over 365 days
	}

	result, err := New(4).Run(series, testCompanies())
	require.NoError(t, err)
	require.Len(t, result.Symbols, 2)

	var a, b model.SymbolSummary
	for _, s := range result.Symbols {
		switch s.Symbol {
		case "AAA":
			a = s
		case "BBB":
			b = s
		}
	}

	// AAA: (1+1)^(1/years)-1 with years = 730/365.25, about 2^(1/2)-1.
	yearsA := 730.0 / 365.25
	assert.InDelta(t, yearsA, a.Metrics.Years, 1e-12)
	assert.InDelta(t, math.Pow(2, 1/yearsA)-1, a.Metrics.AnnualizedReturn, 1e-12)
	assert.InDelta(t, math.Sqrt2-1, a.Metrics.AnnualizedReturn, 1e-3)
	assert.InDelta(t, 1.0, a.Metrics.TotalReturn, 1e-12)

	// BBB: 10% over one 365-day year.
	assert.InDelta(t, 0.10, b.Metrics.AnnualizedReturn, 1e-3)
	assert.InDelta(t, 0.10, b.Metrics.TotalReturn, 1e-12)

	// Trajectories anchor at exactly 100.
	assert.Equal(t, 100.0, a.Trajectory[0].Normalized)
	assert.Equal(t, 100.0, b.Trajectory[0].Normalized)
	assert.InDelta(t, 200.0, a.Trajectory[1].Normalized, 1e-9)
	assert.Equal(t, 100.0, result.Benchmark.Trajectory[0].Normalized)

	// Market caps: AAA parsed from "1.2T", BBB falls back to end price x 1e6.
	assert.InDelta(t, 1.2e12, a.Metrics.MarketCap, 1)
	assert.InDelta(t, 55*1e6, b.Metrics.MarketCap, 1e-3)

	// Volatility is non-negative everywhere.
	assert.GreaterOrEqual(t, a.Metrics.Volatility, 0.0)
	assert.GreaterOrEqual(t, b.Metrics.Volatility, 0.0)
	assert.GreaterOrEqual(t, result.Benchmark.Metrics.Volatility, 0.0)
}

func TestRun_SkipPolicies(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	short := linearSeries("SHORT", start, 100, 10, 20)        // under 252 observations
	negative := linearSeries("NEG", start, 400, -5, 10)       // non-positive start price
	noCompany := linearSeries("GHOST", start, 400, 10, 20)    // no metadata record
	healthy := linearSeries("AAA", start, 400, 100, 150)      // eligible

	companies := map[string]model.CompanyInfo{
		"AAA":   {Symbol: "AAA", Name: "Alpha Corp", Sector: "Technology", Industry: "Software"},
		"SHORT": {Symbol: "SHORT", Name: "Shortco"},
		"NEG":   {Symbol: "NEG", Name: "Negco"},
	}

	result, err := New(1).Run([]model.PriceSeries{short, negative, noCompany, healthy}, companies)
	require.NoError(t, err)

	require.Len(t, result.Symbols, 1)
	assert.Equal(t, "AAA", result.Symbols[0].Symbol)

	assert.Equal(t, 1, result.Skipped[SkipInsufficientHistory])
	assert.Equal(t, 1, result.Skipped[SkipBadStartPrice])
	assert.Equal(t, 1, result.Skipped[SkipNoCompanyInfo])
}

func TestRun_FatalConditions(t *testing.T) {
	_, err := New(1).Run(nil, testCompanies())
	assert.Error(t, err, "empty price table must be fatal")

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []model.PriceSeries{linearSeries("AAA", start, 400, 100, 150)}
	_, err = New(1).Run(series, nil)
	assert.Error(t, err, "empty company table must be fatal")

	// A single-date benchmark cannot support any return computation.
	oneDay := model.PriceSeries{Symbol: "AAA", Bars: []model.PriceBar{
		{Symbol: "AAA", Date: start, AdjClose: 100, Close: 100},
	}}
	_, err = New(1).Run([]model.PriceSeries{oneDay}, testCompanies())
	assert.Error(t, err, "benchmark with fewer than 2 dates must be fatal")
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []model.PriceSeries{
		linearSeries("AAA", start, 730, 100, 200),
		linearSeries("BBB", start, 500, 50, 55),
		linearSeries("CCC", start, 400, 20, 60),
	}
	companies := testCompanies()
	companies["CCC"] = model.CompanyInfo{Symbol: "CCC", Name: "Gamma", Sector: "Energy", Industry: "Oil"}

	sequential, err := New(1).Run(series, companies)
	require.NoError(t, err)
	parallel, err := New(8).Run(series, companies)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel, "results must not depend on worker count")
}

func TestRun_AdjCloseFallbackToClose(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	s := linearSeries("AAA", start, 400, 100, 120)
	for i := range s.Bars {
		s.Bars[i].AdjClose = model.NoValue()
	}

	// The benchmark mean only sees adjusted closes, so pair the broken
	// symbol with a healthy one to keep the benchmark alive.
	healthy := linearSeries("BBB", start, 400, 50, 55)

	result, err := New(1).Run([]model.PriceSeries{s, healthy}, testCompanies())
	require.NoError(t, err)
	require.Len(t, result.Symbols, 2)

	var a model.SymbolSummary
	for _, sum := range result.Symbols {
		if sum.Symbol == "AAA" {
			a = sum
		}
	}
	assert.InDelta(t, 0.20, a.Metrics.TotalReturn, 1e-12, "close column must back the computation")
}

func TestComparison(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	series := []model.PriceSeries{
		linearSeries("AAA", start, 400, 100, 200),
		linearSeries("BBB", start, 400, 50, 55),
	}

	cmp, err := New(1).Comparison(series, testCompanies(), "AAA")
	require.NoError(t, err)

	assert.Equal(t, "Alpha Corp", cmp.Target.Name)
	assert.Equal(t, "S&P 500", cmp.Market.Name)
	require.NotEmpty(t, cmp.Target.Points)
	assert.Equal(t, 100.0, cmp.Target.Points[0].Normalized)
	assert.Equal(t, 100.0, cmp.Market.Points[0].Normalized)
	assert.InDelta(t, 200.0, cmp.Target.Points[len(cmp.Target.Points)-1].Normalized, 1e-9)

	_, err = New(1).Comparison(series, testCompanies(), "MISSING")
	assert.Error(t, err)
}

func TestHindsightSeries(t *testing.T) {
	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	series := []model.PriceSeries{
		linearSeries("AAA", start, 120, 100, 130), // ~4 months of data
		linearSeries("TINY", start, 30, 10, 12),   // under the 60-row floor
	}

	entries := New(1).HindsightSeries(series, testCompanies(), []string{"AAA", "TINY", "MISSING"})
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "AAA", e.Symbol)
	assert.GreaterOrEqual(t, len(e.Trajectory), 3)
	assert.Equal(t, 100.0, e.Trajectory[0].Normalized)
	assert.InDelta(t, 0.30, e.TotalReturn, 0.02, "monthly endpoints track the daily move")
}

func TestReturnsDistribution(t *testing.T) {
	bars := []model.PriceBar{
		{Symbol: "AAA", Date: time.Date(2019, 12, 30, 0, 0, 0, 0, time.UTC), AdjClose: 100},
		{Symbol: "AAA", Date: time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC), AdjClose: 110},
		{Symbol: "AAA", Date: time.Date(2021, 12, 30, 0, 0, 0, 0, time.UTC), AdjClose: 121},
		// Gap year: 2023 is missing, so 2022->2024 contributes nothing.
		{Symbol: "AAA", Date: time.Date(2022, 12, 30, 0, 0, 0, 0, time.UTC), AdjClose: 121},
		{Symbol: "AAA", Date: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), AdjClose: 240},
	}
	series := []model.PriceSeries{{Symbol: "AAA", Bars: bars}}

	h := New(1).ReturnsDistribution(series)
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, 3, total, "three consecutive-year returns, gap excluded from counts")
	assert.InDelta(t, 0.10, h.Median, 1e-9)
}

func TestScreen(t *testing.T) {
	benchmark := model.BenchmarkSummary{
		Name:    BenchmarkName,
		Metrics: model.SymbolMetrics{AnnualizedReturn: 0.08, Volatility: 0.15},
	}
	symbols := []model.SymbolSummary{
		{
			Symbol: "SAFE", Name: "Safe Co", Sector: "Utilities",
			Metrics: model.SymbolMetrics{AnnualizedReturn: 0.06, Volatility: 0.12, MarketCap: 4e11},
		},
		{
			Symbol: "HOT", Name: "Hot Co", Sector: "Technology",
			Metrics: model.SymbolMetrics{AnnualizedReturn: 0.16, Volatility: 0.45, MarketCap: 5e10},
		},
	}

	rows := Screen(symbols, benchmark)
	require.Len(t, rows, 2)

	assert.Equal(t, "HOT", rows[0].Symbol, "rows sorted by annualized return, best first")
	assert.True(t, rows[0].OutperformedMarket)
	assert.False(t, rows[1].OutperformedMarket)
	assert.InDelta(t, 0.08, rows[0].ReturnVsMarket, 1e-12)
	assert.InDelta(t, 0.30, rows[0].VolatilityVsMarket, 1e-12)
	assert.InDelta(t, 0.16/0.45, rows[0].RiskAdjustedReturn, 1e-12)

	// 0.3*(0.16/0.08) + 0.4*(0.45/0.15) + 0.2/(5e10/1e11) + 0.1
	assert.InDelta(t, 0.6+1.2+0.4+0.1, rows[0].TrapScore, 1e-12)
}
