package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"SP500Insight/internal/engine"
)

// FormatRunSummary renders a human-readable digest of one pipeline run:
// benchmark numbers, eligibility counts, and the extremes of the screener
// ranking. Written next to the JSON payloads as summary.txt.
func FormatRunSummary(result *engine.Result, rows []engine.ScreenerRow, priceRecords int, elapsed time.Duration) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("S&P 500 Insight run | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Price records processed: %s\n", humanize.Comma(int64(priceRecords))))
	b.WriteString(fmt.Sprintf("Eligible symbols: %d\n", len(result.Symbols)))

	var skipped int
	for _, n := range result.Skipped {
		skipped += n
	}
	b.WriteString(fmt.Sprintf("Skipped symbols: %d\n", skipped))
	for _, reason := range []engine.SkipReason{
		engine.SkipNoCompanyInfo,
		engine.SkipInsufficientHistory,
		engine.SkipNoValidReturns,
		engine.SkipBadStartPrice,
		engine.SkipNonPositiveSpan,
	} {
		if n := result.Skipped[reason]; n > 0 {
			b.WriteString(fmt.Sprintf("  %s: %d\n", reason, n))
		}
	}

	m := result.Benchmark.Metrics
	b.WriteString(fmt.Sprintf("\n%s\n", result.Benchmark.Name))
	b.WriteString(fmt.Sprintf("  span: %.1f years\n", m.Years))
	b.WriteString(fmt.Sprintf("  total return: %+.1f%%\n", m.TotalReturn*100))
	b.WriteString(fmt.Sprintf("  annualized return: %+.2f%%\n", m.AnnualizedReturn*100))
	b.WriteString(fmt.Sprintf("  annualized volatility: %.2f%%\n", m.Volatility*100))

	if len(rows) > 0 {
		b.WriteString("\nTop performers (annualized):\n")
		for i, r := range rows {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  %-6s %+7.2f%%  vol %6.2f%%  %s\n",
				r.Symbol, r.AnnualizedReturn*100, r.Volatility*100, r.Name))
		}

		byTrap := topByTrapScore(rows, 5)
		b.WriteString("\nHighest trap scores:\n")
		for _, r := range byTrap {
			b.WriteString(fmt.Sprintf("  %-6s score %5.2f  %+7.2f%% at vol %6.2f%%  %s\n",
				r.Symbol, r.TrapScore, r.AnnualizedReturn*100, r.Volatility*100, r.Sector))
		}
	}

	b.WriteString(fmt.Sprintf("\nCompleted in %s\n", elapsed.Round(time.Millisecond)))
	return b.String()
}

func topByTrapScore(rows []engine.ScreenerRow, n int) []engine.ScreenerRow {
	sorted := append([]engine.ScreenerRow(nil), rows...)
	for i := 0; i < len(sorted) && i < n; i++ {
		best := i
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].TrapScore > sorted[best].TrapScore {
				best = j
			}
		}
		sorted[i], sorted[best] = sorted[best], sorted[i]
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
