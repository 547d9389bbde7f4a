package models

import "math"

// Candle represents an OHLCV record for one simulated time bucket.
// Time is in seconds since the Unix epoch.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Valid reports whether the candle satisfies the OHLCV invariant:
// low <= min(open, close), high >= max(open, close) and volume >= 0.
func (c Candle) Valid() bool {
	return c.Low <= math.Min(c.Open, c.Close) &&
		c.High >= math.Max(c.Open, c.Close) &&
		c.Volume >= 0
}

// Bullish is true when the candle closed at or above its open.
func (c Candle) Bullish() bool { return c.Close >= c.Open }

// Scale returns a copy with every price field multiplied by factor.
// Volume is denominated in the base asset and stays untouched.
func (c Candle) Scale(factor float64) Candle {
	c.Open *= factor
	c.High *= factor
	c.Low *= factor
	c.Close *= factor
	return c
}
