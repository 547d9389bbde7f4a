package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"FinChart/internal/services/chart"
)

const (
	listWidth    = 20
	candleShare  = 80
	minWidth     = listWidth + 20
	minHeight    = 10
	waitingLabel = "waiting for data"
)

var (
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderFrame lays the frame out in a width×height terminal: the market list
// on the left and the candlestick and volume panels stacked on the right.
func renderFrame(f chart.Frame, keys KeyMap, width, height int) string {
	if width < minWidth || height < minHeight {
		return "terminal too small"
	}
	bodyH := height - 1
	rightW := width - listWidth
	candleH := bodyH * candleShare / 100
	volumeH := bodyH - candleH

	left := renderMarkets(f.Markets, listWidth, bodyH)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderCandlePanel(f, rightW, candleH),
		renderVolumePanel(f, rightW, volumeH),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := helpStyle.Render(runewidth.Truncate(keys.Help(), width, "…"))
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// panel wraps lines in a bordered box of the given outer size.
func panel(lines []string, w, h int) string {
	innerW, innerH := max(w-2, 0), max(h-2, 0)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	return panelStyle.Width(innerW).Height(innerH).MaxWidth(w).Render(strings.Join(lines, "\n"))
}

func renderMarkets(markets []chart.MarketLine, w, h int) string {
	innerW := w - 2
	lines := []string{titleStyle.Render("Markets")}
	for _, m := range markets {
		text := runewidth.Truncate(m.Text, innerW, "…")
		lines = append(lines, styleFor(m.Color, m.Bold).Render(text))
	}
	return panel(lines, w, h)
}

func panelTitle(title string, innerW int, right chart.Text) string {
	g := newGrid(innerW, 1)
	g.text(0, 0, title, chart.ColorDefault, true)
	if right.Content != "" {
		g.textRight(0, right.Content, right.Color, right.Bold)
	}
	return g.String()
}

func renderCandlePanel(f chart.Frame, w, h int) string {
	innerW, innerH := w-2, h-2
	title := f.Candles.Title
	if f.PageLabel != "" {
		title += " [" + f.PageLabel + "]"
	}
	lines := []string{panelTitle(title, innerW, chart.Text{})}
	if f.Candles.Empty {
		lines = append(lines, helpStyle.Render(waitingLabel))
		return panel(lines, w, h)
	}
	lines = append(lines, drawCandles(f.Candles, innerW, innerH-1).lines()...)
	return panel(lines, w, h)
}

func renderVolumePanel(f chart.Frame, w, h int) string {
	innerW, innerH := w-2, h-2
	lines := []string{panelTitle(f.Volume.Title, innerW, f.Headline)}
	if f.Volume.Empty {
		return panel(lines, w, h)
	}
	lines = append(lines, drawVolume(f.Volume, innerW, innerH-1).lines()...)
	return panel(lines, w, h)
}
