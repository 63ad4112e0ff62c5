package recorder

import "time"

// RunSnapshot holds the aggregate outcome of one analysis run.
type RunSnapshot struct {
	RunID           string
	StartedAt       time.Time
	Elapsed         time.Duration
	PriceRecords    int
	DroppedRows     int
	EligibleSymbols int
	SkippedSymbols  int
	BenchmarkReturn float64
	BenchmarkVol    float64
	BenchmarkYears  float64
}

// SymbolRecord holds one symbol's computed metrics within a run.
type SymbolRecord struct {
	RunID            string
	Symbol           string
	Name             string
	Sector           string
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	Years            float64
	MarketCap        float64
	TrapScore        float64
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	RecordSymbols(records []SymbolRecord) error
	Close() error
}
