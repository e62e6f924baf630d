package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Fullscreen key.Binding
	Debug      key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Fullscreen: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fullscreen"),
	),
	Debug: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "debug"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Fullscreen, k.Debug, k.Quit}
}
