package panel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Copy     key.Binding
	Standard key.Binding
	Relative key.Binding
	Hide     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Copy:     key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "copy problem+")),
		Standard: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy description")),
		Relative: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "toggle relative path")),
		Hide:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "toggle standard copy")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Standard, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Copy, k.Standard},
		{k.Relative, k.Hide, k.Quit},
	}
}
