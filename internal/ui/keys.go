package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevBar  key.Binding
	NextBar  key.Binding
	NudgeUp  key.Binding
	NudgeDn  key.Binding
	Invert   key.Binding
	Theme    key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "metric up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "metric down"),
	),
	PrevBar: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev game"),
	),
	NextBar: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next game"),
	),
	NudgeUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "raise line"),
	),
	NudgeDn: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "lower line"),
	),
	Invert: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "flip direction"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss popup"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q/ctrl+c", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NudgeUp, k.NudgeDn, k.Invert, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevBar, k.NextBar},
		{k.NudgeUp, k.NudgeDn, k.Invert, k.Theme, k.Dismiss, k.Quit},
	}
}
