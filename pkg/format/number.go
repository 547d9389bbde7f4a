// Package format renders prices and volumes for display. Every function is
// total: non-finite input yields "Invalid" instead of an error.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

const invalid = "Invalid"

// Family is a formatting convention.
type Family int

const (
	// GroupedDecimal is the USD style: magnitude suffixes, 2 or 4 decimals.
	GroupedDecimal Family = iota
	// GroupedInteger is the IDR style: rounded integer, "." every 3 digits.
	GroupedInteger
)

// FamilyOf picks the convention for a quote currency.
func FamilyOf(unit currency.Unit) Family {
	if unit == currency.IDR {
		return GroupedInteger
	}
	return GroupedDecimal
}

// Price formats v using the convention of unit.
func Price(unit currency.Unit, v float64) string {
	if FamilyOf(unit) == GroupedInteger {
		return IDR(v)
	}
	return USD(v)
}

// USD formats v in the grouped-decimal style:
//
//	0        -> "$0.00"
//	0.05     -> "$0.0500"
//	999.5    -> "$999.50"
//	1234.5   -> "$1.23K"
//	1e6      -> "$1.00M"
//	-1234.5  -> "-$1.23K"
func USD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid
	}
	if v == 0 {
		return "$0.00"
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)

	var body string
	switch {
	case abs >= 1e9:
		body = fixed(abs/1e9, 2) + "B"
	case abs >= 1e6:
		body = fixed(abs/1e6, 2) + "M"
	case abs >= 1e3:
		body = fixed(abs/1e3, 2) + "K"
	case abs >= 0.10:
		intPart, frac, _ := strings.Cut(fixed(abs, 2), ".")
		body = Group(intPart, ',') + "." + frac
	default:
		body = fixed(abs, 4)
	}
	return sign + "$" + body
}

// IDR formats v in the grouped-integer style: 1729998000 -> "1.729.998.000".
func IDR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid
	}
	r := math.Round(v)
	if r == 0 {
		// drops the sign of -0
		return "0"
	}
	digits := strconv.FormatFloat(math.Abs(r), 'f', 0, 64)
	if r < 0 {
		return "-" + Group(digits, '.')
	}
	return Group(digits, '.')
}

// Change formats a price delta the way the market list shows it:
// "(12.34)" for grouped-decimal currencies, "(-1235)" for grouped-integer
// ones, and "" for a zero delta.
func Change(unit currency.Unit, delta float64) string {
	if delta == 0 {
		return ""
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return "(" + invalid + ")"
	}
	prec := 2
	if FamilyOf(unit) == GroupedInteger {
		prec = 0
	}
	return "(" + strconv.FormatFloat(delta, 'f', prec, 64) + ")"
}

// Volume formats an axis volume value with no decimals.
func Volume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// Group inserts sep every three digits counting from the right of an
// unsigned digit string.
func Group(digits string, sep byte) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	head := n % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < n; i += 3 {
		b.WriteByte(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
