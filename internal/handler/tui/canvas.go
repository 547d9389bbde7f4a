package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"FinChart/internal/services/chart"
)

const (
	wickRune   = '│'
	bodyRune   = '█'
	volumeRune = '▇'
)

var palette = map[chart.Color]lipgloss.Color{
	chart.ColorGreen:  lipgloss.Color("2"),
	chart.ColorRed:    lipgloss.Color("1"),
	chart.ColorGray:   lipgloss.Color("8"),
	chart.ColorYellow: lipgloss.Color("3"),
	chart.ColorWhite:  lipgloss.Color("15"),
	chart.ColorBlue:   lipgloss.Color("4"),
	chart.ColorCyan:   lipgloss.Color("6"),
}

func styleFor(c chart.Color, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(bold)
	if fg, ok := palette[c]; ok {
		s = s.Foreground(fg)
	}
	return s
}

type cell struct {
	r     rune
	color chart.Color
	bold  bool
}

// grid is a fixed-size block of terminal cells.
type grid struct {
	w, h  int
	cells []cell
}

func newGrid(w, h int) *grid {
	w, h = max(w, 0), max(h, 0)
	g := &grid{w: w, h: h, cells: make([]cell, w*h)}
	for i := range g.cells {
		g.cells[i].r = ' '
	}
	return g
}

func (g *grid) set(x, y int, r rune, c chart.Color) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = cell{r: r, color: c}
}

// text writes s from column x, clipped to the grid.
func (g *grid) text(x, y int, s string, c chart.Color, bold bool) {
	if y < 0 || y >= g.h {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x >= 0 && x+w <= g.w {
			g.cells[y*g.w+x] = cell{r: r, color: c, bold: bold}
			for i := 1; i < w; i++ {
				g.cells[y*g.w+x+i] = cell{}
			}
		}
		x += w
	}
}

// textRight writes s so that it ends at the last column.
func (g *grid) textRight(y int, s string, c chart.Color, bold bool) {
	g.text(g.w-runewidth.StringWidth(s), y, s, c, bold)
}

// lines renders rows, styling runs of equal color together.
func (g *grid) lines() []string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b strings.Builder
		row := g.cells[y*g.w : (y+1)*g.w]
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].color == row[i].color && row[j].bold == row[i].bold {
				if row[j].r != 0 {
					run.WriteRune(row[j].r)
				}
				j++
			}
			if row[i].color == chart.ColorDefault && !row[i].bold {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(row[i].color, row[i].bold).Render(run.String()))
			}
			i = j
		}
		lines[y] = b.String()
	}
	return lines
}

func (g *grid) String() string { return strings.Join(g.lines(), "\n") }

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// scaleRow maps v in b onto rows [0, rows-1], top row being b.Max.
func scaleRow(v float64, b chart.Bounds, rows int) int {
	if rows <= 1 || b.Span() <= 0 {
		return 0
	}
	r := int(math.Round((b.Max - v) / b.Span() * float64(rows-1)))
	return min(max(r, 0), rows-1)
}

// scaleCol maps x in b onto columns [0, cols-1].
func scaleCol(x float64, b chart.Bounds, cols int) int {
	if cols <= 1 || b.Span() <= 0 {
		return 0
	}
	c := int((x - b.Min) / b.Span() * float64(cols))
	return min(max(c, 0), cols-1)
}

// drawCandles paints a candlestick series into a w×h block with the y axis
// labels on the left.
func drawCandles(s chart.CandlestickSeries, w, h int) *grid {
	g := newGrid(w, h)
	if s.Empty || w <= 0 || h <= 0 {
		return g
	}

	gutter := labelWidth(s.YLabels) + 1
	plotW := w - gutter
	if plotW <= 0 {
		return g
	}

	rows := []int{h - 1, (h - 1) / 2, 0}
	for i, label := range s.YLabels {
		if i < len(rows) {
			g.text(gutter-1-runewidth.StringWidth(label), rows[i], label, chart.ColorGray, false)
		}
	}

	slot := float64(plotW) / s.X.Span()
	bodyCells := max(1, int(math.Round(slot*0.6)))
	for _, bar := range s.Bars {
		mid := gutter + scaleCol(bar.X, s.X, plotW)
		for y := scaleRow(bar.WickHigh, s.Y, h); y <= scaleRow(bar.WickLow, s.Y, h); y++ {
			g.set(mid, y, wickRune, s.WickColor)
		}
		left := mid - bodyCells/2
		for y := scaleRow(bar.BodyHigh, s.Y, h); y <= scaleRow(bar.BodyLow, s.Y, h); y++ {
			for x := left; x < left+bodyCells; x++ {
				if x >= gutter {
					g.set(x, y, bodyRune, bar.Color)
				}
			}
		}
	}
	return g
}

// drawVolume paints the volume series: bars, y labels on the left and the
// time labels on the bottom row.
func drawVolume(s chart.VolumeSeries, w, h int) *grid {
	g := newGrid(w, h)
	if s.Empty || w <= 0 || h <= 1 {
		return g
	}

	gutter := labelWidth(s.YLabels) + 1
	plotW := w - gutter
	plotH := h - 1
	if plotW <= 0 {
		return g
	}

	rows := []int{plotH - 1, (plotH - 1) / 2, 0}
	for i, label := range s.YLabels {
		if i < len(rows) {
			g.text(gutter-1-runewidth.StringWidth(label), rows[i], label, chart.ColorGray, false)
		}
	}

	for _, bar := range s.Bars {
		x := gutter + scaleCol(bar.X, s.X, plotW)
		top := scaleRow(bar.Height, s.Y, plotH)
		for y := top; y < plotH; y++ {
			g.set(x, y, volumeRune, s.Color)
		}
	}

	switch n := len(s.XLabels); {
	case n == 1:
		g.text(gutter, plotH, s.XLabels[0], chart.ColorGray, false)
	case n > 1:
		step := plotW / n
		for i, label := range s.XLabels {
			x := gutter + i*step
			if i == n-1 {
				x = w - runewidth.StringWidth(label)
			}
			g.text(x, plotH, label, chart.ColorGray, false)
		}
	}
	return g
}
