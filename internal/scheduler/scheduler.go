package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"SP500Insight/internal/config"
	"SP500Insight/internal/dataset"
	"SP500Insight/internal/engine"
	"SP500Insight/internal/recorder"
	"SP500Insight/internal/report"
)

// Scheduler owns the analysis pipeline: load the dataset, run the metrics
// engine, emit report files, and record the run. It can run once or on a
// cron schedule for periodic dataset refreshes.
type Scheduler struct {
	Cron     *cron.Cron
	Source   dataset.Source
	Engine   *engine.Engine
	Writer   *report.Writer
	Recorder recorder.Recorder
	Cfg      *config.Config
	Ctx      context.Context
}

// NewScheduler creates a Scheduler wired to the given source and sinks.
func NewScheduler(ctx context.Context, src dataset.Source, eng *engine.Engine, w *report.Writer, rec recorder.Recorder, cfg *config.Config) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Source:   src,
		Engine:   eng,
		Writer:   w,
		Recorder: rec,
		Cfg:      cfg,
		Ctx:      ctx,
	}
}

// Register adds the periodic refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	if err := s.RunOnce(); err != nil {
		log.Printf("[ERROR] scheduled refresh: %v", err)
	}
}

// RunOnce executes the full pipeline once: load, compute, emit, record.
func (s *Scheduler) RunOnce() error {
	if err := s.Ctx.Err(); err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	started := time.Now()
	runID := uuid.NewString()
	log.Printf("[INFO] analysis run %s starting (source: %s)", runID, s.Source.Name())

	bars, err := s.Source.LoadStocks()
	if err != nil {
		return fmt.Errorf("load stocks: %w", err)
	}
	companyList, err := s.Source.LoadCompanies()
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}

	series := dataset.GroupBySymbol(bars)
	companies := dataset.CompanyIndex(companyList)
	log.Printf("[INFO] loaded %d price records across %d symbols, %d companies",
		len(bars), len(series), len(companies))

	result, err := s.Engine.Run(series, companies)
	if err != nil {
		return fmt.Errorf("metrics engine: %w", err)
	}

	rows := engine.Screen(result.Symbols, result.Benchmark)
	histogram := s.Engine.ReturnsDistribution(series)
	hindsight := s.Engine.HindsightSeries(series, companies, s.Cfg.Analysis.HindsightSymbols)

	comparisonPayload, err := report.BuildComparisonPayload(result)
	if err != nil {
		return fmt.Errorf("build comparison payload: %w", err)
	}
	if err := s.Writer.WriteJSON("comparison_data.json", comparisonPayload); err != nil {
		return err
	}

	cmp, err := s.Engine.Comparison(series, companies, s.Cfg.Analysis.TargetSymbol)
	if err != nil {
		// The target symbol is advisory; a bad one should not sink the run.
		log.Printf("[WARN] target comparison for %s: %v", s.Cfg.Analysis.TargetSymbol, err)
	} else {
		if err := s.Writer.WriteJSON("target_comparison.json", report.BuildTargetPayload(cmp)); err != nil {
			return err
		}
	}

	if err := s.Writer.WriteJSON("hindsight_stocks.json", report.BuildHindsightPayload(hindsight)); err != nil {
		return err
	}
	if err := s.Writer.WriteJSON("returns_distribution.json", report.BuildDistributionPayload(histogram)); err != nil {
		return err
	}
	if err := s.Writer.WriteScreenerCSV("screener.csv", rows); err != nil {
		return err
	}

	elapsed := time.Since(started)
	summary := report.FormatRunSummary(result, rows, len(bars), elapsed)
	if err := s.Writer.WriteText("summary.txt", summary); err != nil {
		return err
	}

	s.record(runID, started, elapsed, len(bars), result, rows)

	log.Printf("[INFO] analysis run %s done: %d eligible symbols in %s",
		runID, len(result.Symbols), elapsed.Round(time.Millisecond))
	return nil
}

// record persists the run outcome. Recording failures are logged, not fatal;
// the report files are already on disk.
func (s *Scheduler) record(runID string, started time.Time, elapsed time.Duration, priceRecords int, result *engine.Result, rows []engine.ScreenerRow) {
	var skipped int
	for _, n := range result.Skipped {
		skipped += n
	}

	m := result.Benchmark.Metrics
	if err := s.Recorder.RecordRun(&recorder.RunSnapshot{
		RunID:           runID,
		StartedAt:       started,
		Elapsed:         elapsed,
		PriceRecords:    priceRecords,
		EligibleSymbols: len(result.Symbols),
		SkippedSymbols:  skipped,
		BenchmarkReturn: m.AnnualizedReturn,
		BenchmarkVol:    m.Volatility,
		BenchmarkYears:  m.Years,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	records := make([]recorder.SymbolRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, recorder.SymbolRecord{
			RunID:            runID,
			Symbol:           r.Symbol,
			Name:             r.Name,
			Sector:           r.Sector,
			TotalReturn:      r.TotalReturn,
			AnnualizedReturn: r.AnnualizedReturn,
			Volatility:       r.Volatility,
			Years:            r.Years,
			MarketCap:        r.MarketCap,
			TrapScore:        r.TrapScore,
		})
	}
	if err := s.Recorder.RecordSymbols(records); err != nil {
		log.Printf("[ERROR] record symbols: %v", err)
	}
}
