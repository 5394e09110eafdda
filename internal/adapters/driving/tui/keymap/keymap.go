// Package keymap defines keybindings for the progress view.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings available while a run is in progress.
type KeyMap struct {
	// Cancel interrupts the run; partial results are kept.
	Cancel key.Binding

	// Matches toggles the recent matches panel.
	Matches key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
		Matches: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "matches"),
		),
	}
}

// ShortHelp returns the keybindings shown under the progress view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Matches, k.Cancel}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
