package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the form.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	cycle   key.Binding
	confirm key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		cycle:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "cycle privacy")),
		confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.cycle, k.confirm, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev},
		{k.cycle, k.confirm, k.quit},
	}
}
