package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"SP500Insight/internal/model"
)

// dateLayout is the calendar-date format used throughout the dataset.
const dateLayout = "2006-01-02"

// ParseStocks reads the per-day per-symbol price table. Numeric fields that
// are empty or malformed are coerced to the missing marker, matching the
// loader's type-coercion contract. Rows without a parseable date or symbol
// are dropped; the count of dropped rows is returned for logging.
func ParseStocks(r io.Reader) ([]model.PriceBar, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read stocks header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["date"]; !ok {
		return nil, 0, fmt.Errorf("stocks table has no Date column")
	}
	if _, ok := cols["symbol"]; !ok {
		return nil, 0, fmt.Errorf("stocks table has no Symbol column")
	}

	var bars []model.PriceBar
	var dropped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}

		date, derr := time.Parse(dateLayout, field(record, cols, "date"))
		symbol := strings.TrimSpace(field(record, cols, "symbol"))
		if derr != nil || symbol == "" {
			dropped++
			continue
		}

		bars = append(bars, model.PriceBar{
			Symbol:   symbol,
			Date:     date,
			Open:     numericField(record, cols, "open"),
			High:     numericField(record, cols, "high"),
			Low:      numericField(record, cols, "low"),
			Close:    numericField(record, cols, "close"),
			AdjClose: numericField(record, cols, "adj close"),
			Volume:   volumeField(record, cols),
		})
	}
	return bars, dropped, nil
}

// ParseCompanies reads the per-symbol metadata table. Sector and industry
// default to "Unknown" when absent, the name falls back to the symbol.
func ParseCompanies(r io.Reader) ([]model.CompanyInfo, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read companies header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["symbol"]; !ok {
		return nil, fmt.Errorf("companies table has no Symbol column")
	}

	var companies []model.CompanyInfo
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		symbol := strings.TrimSpace(field(record, cols, "symbol"))
		if symbol == "" {
			continue
		}

		name := strings.TrimSpace(field(record, cols, "longname"))
		if name == "" {
			name = symbol
		}
		sector := strings.TrimSpace(field(record, cols, "sector"))
		if sector == "" {
			sector = "Unknown"
		}
		industry := strings.TrimSpace(field(record, cols, "industry"))
		if industry == "" {
			industry = "Unknown"
		}

		companies = append(companies, model.CompanyInfo{
			Symbol:    symbol,
			Name:      name,
			Sector:    sector,
			Industry:  industry,
			MarketCap: strings.TrimSpace(field(record, cols, "marketcap")),
		})
	}
	return companies, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func numericField(record []string, cols map[string]int, name string) float64 {
	s := strings.TrimSpace(field(record, cols, name))
	if s == "" {
		return model.NoValue()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.NoValue()
	}
	return v
}

func volumeField(record []string, cols map[string]int) int64 {
	v := numericField(record, cols, "volume")
	if model.Missing(v) || v < 0 {
		return 0
	}
	return int64(v)
}
