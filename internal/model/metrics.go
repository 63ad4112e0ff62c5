package model

import "time"

// SymbolMetrics holds the derived performance numbers for one symbol.
// Computed once per run from the full history, never mutated.
type SymbolMetrics struct {
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	Years            float64
	MarketCap        float64
}

// TrajectoryPoint is one observation of a price series rebased so the
// first point equals exactly 100.
type TrajectoryPoint struct {
	Date       time.Time
	Price      float64
	Normalized float64
}

// SymbolSummary is the per-symbol output record of the metrics engine.
type SymbolSummary struct {
	Symbol     string
	Name       string
	Sector     string
	Industry   string
	Trajectory []TrajectoryPoint
	Metrics    SymbolMetrics
}

// BenchmarkSummary is the synthetic market-average record, same shape as a
// symbol summary. MarketCap stays zero; the benchmark has none.
type BenchmarkSummary struct {
	Name       string
	Trajectory []TrajectoryPoint
	Metrics    SymbolMetrics
}
