package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the explorer bindings. It satisfies help.KeyMap.
type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Zoom  key.Binding
	Out   key.Binding
	Leave key.Binding
	Copy  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev arc")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next arc")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "parent")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "child")),
		Zoom:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "zoom")),
		Out:   key.NewBinding(key.WithKeys("backspace", "-"), key.WithHelp("⌫", "zoom out")),
		Leave: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Copy:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Zoom, k.Out, k.Leave, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Zoom, k.Out, k.Leave},
		{k.Copy, k.Help, k.Quit},
	}
}
