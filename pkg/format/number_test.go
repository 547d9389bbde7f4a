package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestUSD(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "zero", in: 0, want: "$0.00"},
		{name: "negative zero", in: math.Copysign(0, -1), want: "$0.00"},
		{name: "tiny uses four decimals", in: 0.05, want: "$0.0500"},
		{name: "lower bound of two decimals", in: 0.10, want: "$0.10"},
		{name: "sub thousand", in: 999.5, want: "$999.50"},
		{name: "sub thousand upper", in: 999.99, want: "$999.99"},
		{name: "rounds up into grouping", in: 999.999, want: "$1,000.00"},
		{name: "thousands", in: 1234.5, want: "$1.23K"},
		{name: "thousand exact", in: 1234.0, want: "$1.23K"},
		{name: "btc price", in: 103879.0, want: "$103.88K"},
		{name: "millions", in: 1_000_000, want: "$1.00M"},
		{name: "billions", in: 1_729_998_000, want: "$1.73B"},
		{name: "negative thousands", in: -1234.5, want: "-$1.23K"},
		{name: "negative sub thousand", in: -12.5, want: "-$12.50"},
		{name: "negative tiny", in: -0.05, want: "-$0.0500"},
		{name: "nan", in: math.NaN(), want: "Invalid"},
		{name: "positive infinity", in: math.Inf(1), want: "Invalid"},
		{name: "negative infinity", in: math.Inf(-1), want: "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, USD(tt.in))
		})
	}
}

func TestIDR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "btc seed", in: 1_729_998_000.0, want: "1.729.998.000"},
		{name: "zero", in: 0, want: "0"},
		{name: "rounds half away from zero", in: 999.5, want: "1.000"},
		{name: "rounds down", in: 1234.4, want: "1.234"},
		{name: "small", in: 42, want: "42"},
		{name: "exact group boundary", in: 100000, want: "100.000"},
		{name: "negative", in: -42679530.0, want: "-42.679.530"},
		{name: "negative rounding to zero", in: -0.3, want: "0"},
		{name: "huge value beyond int64", in: 1e20, want: "100.000.000.000.000.000.000"},
		{name: "nan", in: math.NaN(), want: "Invalid"},
		{name: "infinity", in: math.Inf(1), want: "Invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IDR(tt.in))
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Group("", ','))
	assert.Equal(t, "999", Group("999", ','))
	assert.Equal(t, "1,000", Group("1000", ','))
	assert.Equal(t, "12,345", Group("12345", ','))
	assert.Equal(t, "1.234.567", Group("1234567", '.'))
}

func TestPriceSelectsFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GroupedDecimal, FamilyOf(currency.USD))
	assert.Equal(t, GroupedInteger, FamilyOf(currency.IDR))
	assert.Equal(t, "$2.55K", Price(currency.USD, 2548.64))
	assert.Equal(t, "42.679.530", Price(currency.IDR, 42679530.0))
}

func TestChange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Change(currency.USD, 0))
	assert.Equal(t, "(12.35)", Change(currency.USD, 12.345678))
	assert.Equal(t, "(-3.10)", Change(currency.USD, -3.1))
	assert.Equal(t, "(-1235)", Change(currency.IDR, -1234.6))
	assert.Equal(t, "(Invalid)", Change(currency.IDR, math.NaN()))
}

func TestVolume(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", Volume(0))
	assert.Equal(t, "5500", Volume(5500.4))
	assert.Equal(t, "Invalid", Volume(math.Inf(-1)))
}
