package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the control bindings; calculator characters are not bound
// here and go straight to the keypad
type keyMap struct {
	Evaluate  key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc/c", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Evaluate, k.Backspace, k.Clear},
		{k.Copy, k.Help, k.Quit},
	}
}
