package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

// RoundUp ceilings to the next whole unit. Every derived measurement and
// material cost rounds up, never down: a short material order costs more than
// an over-order.
func RoundUp(v float64) int {
	return int(math.Ceil(v))
}

// SafeFloat parses free text as a float. Anything unparseable, including the
// empty string, reads as 0; malformed input never surfaces as an error.
func SafeFloat(s string) float64 {
	return cast.ToFloat64(strings.TrimSpace(s))
}

// SafeInt truncates the SafeFloat value, so "3.9" reads as 3.
func SafeInt(s string) int {
	return int(SafeFloat(s))
}

// ParseMoney extracts a non-negative whole-dollar amount from free text.
// Currency symbols, grouping commas and whitespace are stripped; any sign is
// dropped with the other non-digits, so negative amounts cannot be entered.
func ParseMoney(s string) int {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	var digits strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	return cast.ToInt(digits.String())
}

// FormatMoney renders whole dollars as "$#,##0" ("$0" for zero).
func FormatMoney(v int) string {
	return "$" + humanize.Comma(int64(v))
}

// ParsePct extracts a non-negative percentage from free text, keeping digits
// and at most one decimal point. Empty or unparseable input is 0.
func ParsePct(s string) float64 {
	s = strings.NewReplacer("%", "", ",", "").Replace(strings.TrimSpace(s))
	var cleaned strings.Builder
	dotUsed := false
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			cleaned.WriteRune(ch)
		case ch == '.' && !dotUsed:
			cleaned.WriteRune(ch)
			dotUsed = true
		}
	}
	return cast.ToFloat64(cleaned.String())
}

// FormatPct renders a percentage trimmed of trailing zeros, always with the
// "%" suffix ("0%" for zero).
func FormatPct(v float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
	if s == "" || s == "-0" {
		s = "0"
	}
	return s + "%"
}
