package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcin-skalski/pr-inbox/internal/inbox"
)

type keyMap struct {
	Down       key.Binding
	Up         key.Binding
	Open       key.Binding
	Mark       key.Binding
	OpenMarked key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" ", "space", "m"),
			key.WithHelp("space", "mark"),
		),
		OpenMarked: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open marked"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// action maps a key press to a store action. Unbound keys map to ActionNone.
func (k keyMap) action(msg tea.KeyMsg) inbox.Action {
	switch {
	case key.Matches(msg, k.Down):
		return inbox.ActionDown
	case key.Matches(msg, k.Up):
		return inbox.ActionUp
	case key.Matches(msg, k.Open):
		return inbox.ActionOpenSelected
	case key.Matches(msg, k.Mark):
		return inbox.ActionToggleMark
	case key.Matches(msg, k.OpenMarked):
		return inbox.ActionOpenMarked
	case key.Matches(msg, k.Refresh):
		return inbox.ActionRefresh
	case key.Matches(msg, k.Quit):
		return inbox.ActionQuit
	default:
		return inbox.ActionNone
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Mark, k.OpenMarked, k.Refresh, k.Quit}
}
