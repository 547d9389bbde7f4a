package chart

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrInvalidRate = errors.New("conversion rate must be positive")

// Conversion maps a quote currency to the secondary display currency using
// a fixed USD/IDR rate.
type Conversion struct {
	usdToIDR float64
	idrToUSD float64
}

// NewConversion derives both directions from an exact decimal rate
// (IDR per 1 USD).
func NewConversion(usdToIDR decimal.Decimal) (Conversion, error) {
	if !usdToIDR.IsPositive() {
		return Conversion{}, ErrInvalidRate
	}
	inverse := decimal.NewFromInt(1).DivRound(usdToIDR, 16)
	return Conversion{
		usdToIDR: usdToIDR.InexactFloat64(),
		idrToUSD: inverse.InexactFloat64(),
	}, nil
}

// ParseConversion parses a decimal rate string such as "16250".
func ParseConversion(rate string) (Conversion, error) {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return Conversion{}, err
	}
	return NewConversion(d)
}

// Target returns the currency values of quote are displayed in for page and
// the factor that converts them.
func (c Conversion) Target(quote currency.Unit, converted bool) (currency.Unit, float64) {
	if !converted {
		return quote, 1
	}
	switch quote {
	case currency.USD:
		return currency.IDR, c.usdToIDR
	case currency.IDR:
		return currency.USD, c.idrToUSD
	default:
		return quote, 1
	}
}
