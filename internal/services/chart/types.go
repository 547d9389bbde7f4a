package chart

import (
	"FinChart/internal/domain/models"
)

// Color is an abstract palette entry; the surface maps it to real colors.
type Color int

const (
	ColorDefault Color = iota
	ColorGreen
	ColorRed
	ColorGray
	ColorYellow
	ColorWhite
	ColorBlue
	ColorCyan
)

// Align is the horizontal placement of a text element.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Bounds is a closed numeric range.
type Bounds struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (b Bounds) Span() float64 { return b.Max - b.Min }

// CandleBar is one candlestick: a wick over [WickLow, WickHigh] and a body
// over [BodyLow, BodyHigh], both centred on X.
type CandleBar struct {
	X        float64
	Width    float64
	WickLow  float64
	WickHigh float64
	BodyLow  float64
	BodyHigh float64
	Color    Color
}

// CandlestickSeries is the price panel.
type CandlestickSeries struct {
	Title     string
	Bars      []CandleBar
	X         Bounds
	Y         Bounds
	YLabels   []string
	WickColor Color
	Empty     bool
}

// VolumeBar is one volume column at X with the given height.
type VolumeBar struct {
	X      float64
	Height float64
}

// VolumeSeries is the volume panel.
type VolumeSeries struct {
	Title   string
	Bars    []VolumeBar
	X       Bounds
	Y       Bounds
	XTitle  string
	YTitle  string
	XLabels []string
	YLabels []string
	Color   Color
	Empty   bool
}

// Text is a styled single-line label.
type Text struct {
	Content string
	Align   Align
	Color   Color
	Bold    bool
}

// MarketLine is one row of the market list.
type MarketLine struct {
	Text     string
	Color    Color
	Bold     bool
	Selected bool
}

// Frame is everything the surface needs to draw one screen.
type Frame struct {
	Markets   []MarketLine
	Candles   CandlestickSeries
	Volume    VolumeSeries
	Headline  Text
	Page      models.Page
	PageLabel string
	// InvalidTimes lists candle timestamps that could not be shown as
	// clock labels; the caller decides how to report them.
	InvalidTimes []int64
}

// MarketState is the per-instrument data the market list needs.
type MarketState struct {
	Instrument models.Instrument
	LastDelta  float64
}

// Input is the full projection input for one frame.
type Input struct {
	Markets   []MarketState
	Selected  models.InstrumentID
	Candles   []models.Candle
	LastPrice float64
	HasPrice  bool
	Page      models.Page
}
