package engine

import (
	"errors"
	"math"
	"sync"

	"SP500Insight/internal/calculator"
	"SP500Insight/internal/model"
)

// MinObservations is the eligibility floor: roughly one trading year of
// daily history.
const MinObservations = 252

// defaultSharesProxy is the placeholder share count used when no market cap
// is available: end price times one million shares.
const defaultSharesProxy = 1e6

// SkipReason classifies why a symbol was excluded from the output set.
// Exclusion is a data-quality filter, not an error.
type SkipReason string

const (
	SkipNoCompanyInfo       SkipReason = "no_company_info"
	SkipInsufficientHistory SkipReason = "insufficient_history"
	SkipNoValidReturns      SkipReason = "no_valid_returns"
	SkipBadStartPrice       SkipReason = "bad_start_price"
	SkipNonPositiveSpan     SkipReason = "non_positive_span"
)

// Engine computes per-symbol metrics and the market benchmark over grouped
// price series. It is a pure computation layer; all I/O happens upstream.
type Engine struct {
	Workers int
}

// New creates an Engine. The per-symbol pass runs on the given number of
// workers; results are identical to the sequential order regardless.
func New(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{Workers: workers}
}

// Result is the output of one full metrics pass.
type Result struct {
	Symbols   []model.SymbolSummary
	Benchmark model.BenchmarkSummary
	Skipped   map[SkipReason]int
}

// Run computes the benchmark and all eligible symbol summaries.
// Empty input tables and a degenerate benchmark are fatal; individual
// symbols failing eligibility are counted and excluded silently.
func (e *Engine) Run(series []model.PriceSeries, companies map[string]model.CompanyInfo) (*Result, error) {
	if len(series) == 0 {
		return nil, errors.New("price table is empty")
	}
	if len(companies) == 0 {
		return nil, errors.New("company table is empty")
	}

	benchmark, err := e.Benchmark(series)
	if err != nil {
		return nil, err
	}

	summaries := make([]*model.SymbolSummary, len(series))
	reasons := make([]SkipReason, len(series))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s := series[i]
				company, ok := companies[s.Symbol]
				if !ok {
					reasons[i] = SkipNoCompanyInfo
					continue
				}
				summary, reason := computeSymbol(s, company)
				if reason != "" {
					reasons[i] = reason
					continue
				}
				summaries[i] = summary
			}
		}()
	}
	for i := range series {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := &Result{
		Benchmark: *benchmark,
		Skipped:   make(map[SkipReason]int),
	}
	for i, s := range summaries {
		if s == nil {
			result.Skipped[reasons[i]]++
			continue
		}
		result.Symbols = append(result.Symbols, *s)
	}
	return result, nil
}

// computeSymbol derives the full metrics block for one symbol, or the reason
// it must be skipped.
func computeSymbol(s model.PriceSeries, company model.CompanyInfo) (*model.SymbolSummary, SkipReason) {
	if len(s.Bars) < MinObservations {
		return nil, SkipInsufficientHistory
	}

	prices := selectPrices(s.Bars)
	returns := calculator.PeriodReturns(prices)
	if len(returns) == 0 {
		return nil, SkipNoValidReturns
	}

	startPrice, endPrice := prices[0], prices[len(prices)-1]
	totalReturn, err := calculator.TotalReturn(startPrice, endPrice)
	if err != nil {
		return nil, SkipBadStartPrice
	}

	startDate := s.Bars[0].Date
	endDate := s.Bars[len(s.Bars)-1].Date
	years := calculator.YearsBetween(startDate, endDate)
	annualized, err := calculator.AnnualizedReturn(totalReturn, years)
	if err != nil {
		return nil, SkipNonPositiveSpan
	}

	marketCap, ok := calculator.ParseMarketCap(company.MarketCap)
	if !ok {
		marketCap = endPrice * defaultSharesProxy
	}

	return &model.SymbolSummary{
		Symbol:   s.Symbol,
		Name:     company.Name,
		Sector:   company.Sector,
		Industry: company.Industry,
		Trajectory: []model.TrajectoryPoint{
			{Date: startDate, Price: startPrice, Normalized: 100.0},
			{Date: endDate, Price: endPrice, Normalized: 100 * (1 + totalReturn)},
		},
		Metrics: model.SymbolMetrics{
			TotalReturn:      totalReturn,
			AnnualizedReturn: annualized,
			Volatility:       calculator.AnnualizedVolatility(returns),
			Years:            years,
			MarketCap:        marketCap,
		},
	}, ""
}

// selectPrices returns the adjusted-close column, falling back to close when
// every adjusted close is missing.
func selectPrices(bars []model.PriceBar) []float64 {
	prices := make([]float64, len(bars))
	allMissing := true
	for i, b := range bars {
		prices[i] = b.AdjClose
		if !math.IsNaN(b.AdjClose) {
			allMissing = false
		}
	}
	if !allMissing {
		return prices
	}
	for i, b := range bars {
		prices[i] = b.Close
	}
	return prices
}
