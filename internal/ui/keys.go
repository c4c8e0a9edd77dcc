package ui

import (
	"github.com/atomicstack/tmux-context-menu/internal/contextmenu"
	"github.com/atomicstack/tmux-context-menu/internal/keybinding"
)

// CommandCancel closes the menu without a selection.
const CommandCancel = "popup.cancel"

// DefaultBindings are the host's own bindings. They hold regardless of the
// menu's visibility so the popup can always be dismissed.
func DefaultBindings() []keybinding.Binding {
	return []keybinding.Binding{
		{Command: CommandCancel, Keys: []string{"esc", "ctrl+c"}, Help: "cancel"},
	}
}

// DefaultRegistry combines the menu bindings with the host bindings.
func DefaultRegistry() *keybinding.Registry {
	return keybinding.NewRegistry(append(contextmenu.DefaultBindings(), DefaultBindings()...)...)
}
