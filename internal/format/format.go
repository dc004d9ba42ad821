// Package format renders calculator output for presentation: currency
// with thousands separators and two decimals, percentages as whole or
// one-decimal values.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxGroupable bounds the values grouped digit-by-digit. Past 2^53 the
// float has no cent precision left and the uint64 conversion could
// overflow, so larger magnitudes render without separators.
const maxGroupable = float64(1 << 53)

// Currency formats v as a dollar amount with thousands separators,
// e.g. 1234.5 → "$1,234.50". Negative values keep the sign before the
// dollar symbol.
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	whole := math.Floor(v)
	cents := math.Round((v - whole) * 100)
	if cents == 100 {
		whole++
		cents = 0
	}
	if whole >= maxGroupable {
		return fmt.Sprintf("%s$%.0f.00", sign, whole)
	}

	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(uint64(whole)), int(cents))
}

// ParseCurrency recovers the numeric value from a string produced by
// Currency. It tolerates missing symbols and separators.
func ParseCurrency(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("empty currency string")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse currency %q: %w", s, err)
	}
	return v, nil
}

// Percent formats v (already a percentage, not a fraction) with the
// given number of decimal places, e.g. Percent(61, 0) → "61%".
func Percent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

func groupThousands(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
