package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Clear  key.Binding
	Labels key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings shown in the footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Help, k.Quit}
}

// FullHelp returns every binding
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.Labels}, {k.Help, k.Quit}}
}

var defaultKeys = keyMap{
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "put tile back"),
	),
	Labels: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "toggle labels"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
