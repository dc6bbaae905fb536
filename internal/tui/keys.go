package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 定义训练板快捷键绑定
// KeyMap defines the training board keybindings
type KeyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	Toggle     key.Binding
	Regenerate key.Binding
	Recommend  key.Binding
	Apply      key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

// DefaultKeyMap 默认快捷键
// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle done"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "regenerate"),
		),
		Recommend: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recommendation"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply adjustment"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
