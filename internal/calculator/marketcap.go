package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// magnitude suffixes accepted in market-cap strings.
var capSuffixes = map[byte]int32{
	'K': 3,
	'M': 6,
	'B': 9,
	'T': 12,
}

// ParseMarketCap parses a market capitalization string such as "1.2T",
// "500.5B", "10.3M" or "$1,000" into its numeric value. Strings without a
// magnitude suffix are parsed as plain numbers. Returns ok=false when the
// string cannot be parsed; callers fall back to a proxy value instead of
// treating this as an error.
func ParseMarketCap(s string) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	if exp, ok := capSuffixes[s[len(s)-1]]; ok {
		num, err := decimal.NewFromString(s[:len(s)-1])
		if err != nil {
			return 0, false
		}
		return num.Mul(decimal.New(1, exp)).InexactFloat64(), true
	}

	num, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return num.InexactFloat64(), true
}
