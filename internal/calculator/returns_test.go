package calculator

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodReturns_Basic(t *testing.T) {
	prices := []float64{100, 110, 99}
	returns := PeriodReturns(prices)
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.10) > 1e-12 {
		t.Errorf("expected first return 0.10, got %v", returns[0])
	}
	if math.Abs(returns[1]-(-0.10)) > 1e-12 {
		t.Errorf("expected second return -0.10, got %v", returns[1])
	}
}

func TestPeriodReturns_SkipsMissing(t *testing.T) {
	prices := []float64{100, math.NaN(), 120}
	returns := PeriodReturns(prices)
	if len(returns) != 1 {
		t.Fatalf("expected 1 return bridging the gap, got %d", len(returns))
	}
	if math.Abs(returns[0]-0.20) > 1e-12 {
		t.Errorf("expected return 0.20 against last valid price, got %v", returns[0])
	}
}

func TestPeriodReturns_SingleOrEmpty(t *testing.T) {
	if got := PeriodReturns(nil); len(got) != 0 {
		t.Errorf("expected no returns for empty input, got %d", len(got))
	}
	if got := PeriodReturns([]float64{42}); len(got) != 0 {
		t.Errorf("expected no returns for single price, got %d", len(got))
	}
}

func TestTotalReturn(t *testing.T) {
	tr, err := TotalReturn(100, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(tr-0.5) > 1e-12 {
		t.Errorf("expected 0.5, got %v", tr)
	}

	if _, err := TotalReturn(0, 150); err == nil {
		t.Error("expected error for zero start price")
	}
	if _, err := TotalReturn(math.NaN(), 150); err == nil {
		t.Error("expected error for missing start price")
	}
}

func TestAnnualizedReturn_OnlyEndpointsMatter(t *testing.T) {
	// 100 -> 200 over exactly two 365.25-day years: (1+1)^(1/2)-1.
	ann, err := AnnualizedReturn(1.0, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt2 - 1
	if math.Abs(ann-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, ann)
	}

	if _, err := AnnualizedReturn(0.5, 0); err == nil {
		t.Error("expected error for non-positive span")
	}
}

func TestYearsBetween(t *testing.T) {
	start := date(2021, time.January, 1)
	end := start.AddDate(0, 0, 730)
	years := YearsBetween(start, end)
	if math.Abs(years-730.0/365.25) > 1e-12 {
		t.Errorf("expected %v, got %v", 730.0/365.25, years)
	}
}

func TestAnnualizedVolatility(t *testing.T) {
	if v := AnnualizedVolatility(nil); v != 0 {
		t.Errorf("expected 0 for no returns, got %v", v)
	}
	if v := AnnualizedVolatility([]float64{0.01}); v != 0 {
		t.Errorf("expected 0 for a single return, got %v", v)
	}

	returns := []float64{0.01, -0.01, 0.02, -0.02}
	v := AnnualizedVolatility(returns)
	want := StdDev(returns) * math.Sqrt(TradingDaysPerYear)
	if math.Abs(v-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, v)
	}
	if v < 0 {
		t.Error("volatility must be non-negative")
	}
}

func TestStdDev_SampleDenominator(t *testing.T) {
	// Sample stdev of {1,2,3,4} is sqrt(5/3).
	got := StdDev([]float64{1, 2, 3, 4})
	want := math.Sqrt(5.0 / 3.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}
