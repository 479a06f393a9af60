// Package core provides money parsing and formatting utilities.
//
// Amounts travel through the system as float64 dollars (the calculator works
// in floating point), but every value shown to a visitor or parsed from a form
// goes through shopspring/decimal so rounding is explicit and half-up.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a dollar string to a decimal rounded to cents.
//
// It accepts an optional leading "$" and comma thousand separators. Negative
// values and malformed input return ErrInvalidAmount. Zero is allowed because a
// down payment of zero is a legitimate input.
//
// Examples:
//
//	ParseAmount("280000")      -> 280000.00
//	ParseAmount("$280,000.50") -> 280000.50
//	ParseAmount("12.345")      -> 12.35 (half-up)
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	dots := 0
	for _, r := range s {
		if r == '.' {
			dots++
			continue
		}
		if !unicode.IsDigit(r) {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if dots > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d.Round(2), nil
}

// RoundCents rounds a dollar amount to two decimals, half away from zero.
func RoundCents(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// FormatUSD renders a dollar amount as whole US dollars with thousand
// separators, e.g. 4214.37 -> "$4,214".
func FormatUSD(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	neg := d.IsNegative()
	digits := d.Abs().StringFixed(0)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatPercent renders a ratio already expressed in percent with one decimal,
// e.g. 88.57142 -> "88.6%".
func FormatPercent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}
