// Package keys translates host key input into session key events and holds
// the host's own bindings.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keys the host handles itself instead of forwarding to
// the engine. Everything not bound here goes to the engine.
type KeyMap struct {
	Quit         key.Binding
	Clear        key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
}

// DefaultKeyMap returns the default host bindings. Only keys vim leaves
// unused in insert and normal mode are taken.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear buffer"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "toggle status line"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Clear, k.ToggleStatus},
		{k.Help, k.Quit},
	}
}
