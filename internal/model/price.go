package model

import (
	"math"
	"time"
)

// PriceBar is one daily price record for a single symbol.
// Missing numeric fields carry NaN, never zero.
type PriceBar struct {
	Symbol   string
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// Missing reports whether v holds the "no value" marker.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// NoValue returns the marker used for absent numeric fields.
func NoValue() float64 {
	return math.NaN()
}

// PriceSeries holds the full chronological price history of one symbol.
// Bars are sorted by date with no duplicate dates after grouping.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// CompanyInfo is the per-symbol metadata record joined to price history.
type CompanyInfo struct {
	Symbol    string
	Name      string
	Sector    string
	Industry  string
	MarketCap string // raw field: plain number or magnitude-suffixed string like "1.2T"
}
