package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"SP500Insight/internal/engine"
)

// Writer emits payload files into the output directory.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteJSON marshals a payload with two-space indentation and writes it
// under the output directory.
func (w *Writer) WriteJSON(name string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return w.write(name, append(data, '\n'))
}

// WriteScreenerCSV emits the ranked screener rows as a CSV file.
func (w *Writer) WriteScreenerCSV(name string, rows []engine.ScreenerRow) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(filepath.Join(w.Dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer out.Close()

	cw := csv.NewWriter(out)
	header := []string{
		"symbol", "name", "sector", "industry",
		"annualized_return", "volatility", "total_return", "years", "market_cap",
		"outperformed_market", "return_vs_market", "volatility_vs_market",
		"risk_adjusted_return", "trap_score",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, r := range rows {
		record := []string{
			r.Symbol, r.Name, r.Sector, r.Industry,
			formatFloat(r.AnnualizedReturn),
			formatFloat(r.Volatility),
			formatFloat(r.TotalReturn),
			formatFloat(r.Years),
			formatFloat(r.MarketCap),
			strconv.FormatBool(r.OutperformedMarket),
			formatFloat(r.ReturnVsMarket),
			formatFloat(r.VolatilityVsMarket),
			formatFloat(r.RiskAdjustedReturn),
			formatFloat(r.TrapScore),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

// WriteText writes a plain-text report under the output directory.
func (w *Writer) WriteText(name, text string) error {
	return w.write(name, []byte(text))
}

func (w *Writer) write(name string, data []byte) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
