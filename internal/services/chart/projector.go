// Package chart turns candle history into abstract draw instructions.
// Nothing here mutates its input or touches the terminal.
package chart

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/currency"

	"FinChart/internal/domain/models"
	"FinChart/pkg/format"
	"FinChart/pkg/util"
)

const (
	candleTitle    = "Candlestick Chart"
	volumeTitle    = "Volume"
	bodyWidth      = 0.6
	padRatio       = 0.1
	volumeHeadroom = 1.1

	// maxTimeLabels is the point count above which only the first and last
	// clock labels are shown.
	maxTimeLabels = 5
)

// Projector builds frames. It holds configuration only.
type Projector struct {
	conv Conversion
	loc  *time.Location
}

// NewProjector creates a projector rendering clock labels in loc
// (time.Local when nil).
func NewProjector(conv Conversion, loc *time.Location) *Projector {
	if loc == nil {
		loc = time.Local
	}
	return &Projector{conv: conv, loc: loc}
}

// Project builds the frame for in.
func (p *Projector) Project(in Input) Frame {
	converted := in.Page == models.PageConverted
	frame := Frame{
		Page:    in.Page,
		Markets: p.marketLines(in.Markets, in.Selected, converted),
	}

	var selected models.Instrument
	for _, m := range in.Markets {
		if m.Instrument.ID == in.Selected {
			selected = m.Instrument
			break
		}
	}
	unit, factor := p.conv.Target(selected.Quote, converted)
	frame.PageLabel = pageLabel(in.Page, unit)

	candles := in.Candles
	if factor != 1 {
		candles = make([]models.Candle, len(in.Candles))
		for i, c := range in.Candles {
			candles[i] = c.Scale(factor)
		}
	}

	frame.Candles = Candlesticks(candles, unit)
	frame.Volume, frame.InvalidTimes = p.volume(candles)
	if in.HasPrice {
		frame.Headline = Headline(unit, in.LastPrice*factor)
	}
	return frame
}

// Candlesticks projects candles into bars quoted in unit. An empty input
// yields an empty titled series.
func Candlesticks(candles []models.Candle, unit currency.Unit) CandlestickSeries {
	series := CandlestickSeries{Title: candleTitle, WickColor: ColorWhite}
	if len(candles) == 0 {
		series.Empty = true
		return series
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range candles {
		lo = math.Min(lo, c.Low)
		hi = math.Max(hi, c.High)
	}
	pad := padRatio * (hi - lo)
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.01, 1)
	}
	series.Y = Bounds{Min: lo - pad, Max: hi + pad}
	series.X = Bounds{Min: 0, Max: float64(len(candles))}

	series.Bars = make([]CandleBar, len(candles))
	for i, c := range candles {
		bar := CandleBar{
			X:        float64(i) + 0.5,
			Width:    bodyWidth,
			WickLow:  c.Low,
			WickHigh: c.High,
			BodyLow:  math.Min(c.Open, c.Close),
			BodyHigh: math.Max(c.Open, c.Close),
			Color:    ColorRed,
		}
		if c.Bullish() {
			bar.Color = ColorGreen
		}
		series.Bars[i] = bar
	}

	mid := (series.Y.Min + series.Y.Max) / 2
	series.YLabels = []string{
		format.Price(unit, series.Y.Min),
		format.Price(unit, mid),
		format.Price(unit, series.Y.Max),
	}
	return series
}

func (p *Projector) volume(candles []models.Candle) (VolumeSeries, []int64) {
	series := VolumeSeries{
		Title:  volumeTitle,
		XTitle: "Time",
		YTitle: "Volume",
		Color:  ColorBlue,
	}
	if len(candles) == 0 {
		series.Empty = true
		return series, nil
	}

	maxVol := 0.0
	series.Bars = make([]VolumeBar, len(candles))
	for i, c := range candles {
		maxVol = math.Max(maxVol, c.Volume)
		series.Bars[i] = VolumeBar{X: float64(i) + 0.5, Height: c.Volume}
	}
	top := volumeHeadroom * maxVol
	if top == 0 {
		top = 1
	}
	series.X = Bounds{Min: 0, Max: float64(len(candles))}
	series.Y = Bounds{Min: 0, Max: top}
	series.YLabels = []string{"0", format.Volume(top / 2), format.Volume(top)}

	labelled := candles
	if len(candles) > maxTimeLabels {
		labelled = []models.Candle{candles[0], candles[len(candles)-1]}
	}
	var invalid []int64
	series.XLabels = make([]string, len(labelled))
	for i, c := range labelled {
		label, ok := util.FormatClock(c.Time, p.loc)
		if !ok {
			invalid = append(invalid, c.Time)
		}
		series.XLabels[i] = label
	}
	return series, invalid
}

// Headline formats the latest price right-aligned with a currency prefix.
func Headline(unit currency.Unit, price float64) Text {
	var content string
	switch unit {
	case currency.USD:
		content = fmt.Sprintf("USD%15s", format.USD(price))
	case currency.IDR:
		content = fmt.Sprintf("Rp%16s", format.IDR(price))
	default:
		content = fmt.Sprintf("%s %.2f", unit, price)
	}
	return Text{Content: content, Align: AlignRight, Color: ColorCyan, Bold: true}
}

func (p *Projector) marketLines(markets []MarketState, selected models.InstrumentID, converted bool) []MarketLine {
	lines := make([]MarketLine, len(markets))
	for i, m := range markets {
		unit, factor := p.conv.Target(m.Instrument.Quote, converted)
		delta := m.LastDelta * factor

		icon, color := " ", ColorGray
		switch {
		case delta > 0:
			icon, color = "▲", ColorGreen
		case delta < 0:
			icon, color = "▼", ColorRed
		}

		text := icon + " " + m.Instrument.Symbol
		if change := format.Change(unit, delta); change != "" {
			text += " " + change
		}
		line := MarketLine{Text: text, Color: color}
		if m.Instrument.ID == selected {
			line.Color = ColorYellow
			line.Bold = true
			line.Selected = true
		}
		lines[i] = line
	}
	return lines
}

func pageLabel(page models.Page, unit currency.Unit) string {
	if page == models.PageConverted {
		return "in " + unit.String()
	}
	return "native"
}
