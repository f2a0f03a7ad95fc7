package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Talk      key.Binding
	ChoiceOne key.Binding
	ChoiceTwo key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Talk: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "talk/stop"),
		),
		ChoiceOne: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "first choice"),
		),
		ChoiceTwo: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "second choice"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart story"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Talk, k.ChoiceOne, k.ChoiceTwo, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Talk, k.ChoiceOne, k.ChoiceTwo},
		{k.Reset, k.Help, k.Quit},
	}
}
