package calculator

import (
	"math"
	"testing"
)

func TestParseMarketCap(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.2T", 1.2e12, true},
		{"500.5B", 5.005e11, true},
		{"10.3M", 1.03e7, true},
		{"250K", 2.5e5, true},
		{"$1,000", 1000.0, true},
		{"1.5b", 1.5e9, true},
		{" 2.75T ", 2.75e12, true},
		{"123456789", 1.23456789e8, true},
		{"garbage", 0, false},
		{"", 0, false},
		{"$", 0, false},
		{"T", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMarketCap(tt.in)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.in, tt.ok, ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > math.Abs(tt.want)*1e-12 {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
