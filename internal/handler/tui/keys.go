package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	drepo "FinChart/internal/domain/repository"
)

// KeyMap binds terminal keys to dashboard keys.
type KeyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
	Page key.Binding
}

// DefaultKeyMap is q/ctrl+c to quit, arrows to select and tab to switch page.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev")),
		Down: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Page: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "currency")),
	}
}

// Map translates a key press; unbound keys map to KeyOther.
func (k KeyMap) Map(msg tea.KeyMsg) drepo.Key {
	switch {
	case key.Matches(msg, k.Quit):
		return drepo.KeyQuit
	case key.Matches(msg, k.Up):
		return drepo.KeyUp
	case key.Matches(msg, k.Down):
		return drepo.KeyDown
	case key.Matches(msg, k.Page):
		return drepo.KeyTab
	default:
		return drepo.KeyOther
	}
}

// Help renders the footer line.
func (k KeyMap) Help() string {
	var out string
	for i, b := range []key.Binding{k.Up, k.Down, k.Page, k.Quit} {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
