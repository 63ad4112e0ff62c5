package dataset

import (
	"sort"

	"SP500Insight/internal/model"
)

// GroupBySymbol splits the flat price table into one chronologically sorted
// series per symbol. Duplicate (symbol, date) rows are dropped, keeping the
// first occurrence. Series come back in symbol order so downstream passes are
// deterministic.
func GroupBySymbol(bars []model.PriceBar) []model.PriceSeries {
	bySymbol := make(map[string][]model.PriceBar)
	for _, b := range bars {
		bySymbol[b.Symbol] = append(bySymbol[b.Symbol], b)
	}

	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	series := make([]model.PriceSeries, 0, len(symbols))
	for _, sym := range symbols {
		sb := bySymbol[sym]
		sort.SliceStable(sb, func(i, j int) bool { return sb[i].Date.Before(sb[j].Date) })

		deduped := make([]model.PriceBar, 0, len(sb))
		for _, b := range sb {
			if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
				continue
			}
			deduped = append(deduped, b)
		}
		series = append(series, model.PriceSeries{Symbol: sym, Bars: deduped})
	}
	return series
}

// CompanyIndex builds a symbol-keyed lookup over the company table. When a
// symbol appears more than once the first record wins.
func CompanyIndex(companies []model.CompanyInfo) map[string]model.CompanyInfo {
	idx := make(map[string]model.CompanyInfo, len(companies))
	for _, c := range companies {
		if _, ok := idx[c.Symbol]; !ok {
			idx[c.Symbol] = c
		}
	}
	return idx
}
