package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	drepo "FinChart/internal/domain/repository"
	"FinChart/internal/services/chart"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

type frameMsg chart.Frame

// model is the bubbletea side of the terminal. It only displays the latest
// frame and forwards key presses; all dashboard state lives in the loop.
type model struct {
	keys   KeyMap
	out    chan<- drepo.Key
	frame  chart.Frame
	ready  bool
	width  int
	height int
}

func newModel(keys KeyMap, out chan<- drepo.Key) model {
	return model{keys: keys, out: out, width: defaultWidth, height: defaultHeight}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		k := m.keys.Map(msg)
		if k == drepo.KeyOther {
			return m, nil
		}
		select {
		case m.out <- k:
		default:
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case frameMsg:
		m.frame = chart.Frame(msg)
		m.ready = true
	}
	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "starting…"
	}
	return renderFrame(m.frame, m.keys, m.width, m.height)
}
