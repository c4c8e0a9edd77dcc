package contextmenu

import "github.com/atomicstack/tmux-context-menu/internal/keybinding"

// ContextKeyVisible is published while the menu popup is shown.
const ContextKeyVisible = "contextMenuVisible"

const (
	CommandAcceptSelected = "contextMenu.acceptSelected"
	CommandSelectPrevious = "contextMenu.selectPrevious"
	CommandSelectNext     = "contextMenu.selectNext"
)

var commandIDs = map[Command]string{
	AcceptSelected: CommandAcceptSelected,
	SelectPrevious: CommandSelectPrevious,
	SelectNext:     CommandSelectNext,
}

// ID returns the registry identifier for c.
func (c Command) ID() string {
	return commandIDs[c]
}

func (c Command) String() string {
	if id := c.ID(); id != "" {
		return id
	}
	return "contextMenu.unknown"
}

// CommandByID resolves a registry identifier.
func CommandByID(id string) (Command, bool) {
	for cmd, candidate := range commandIDs {
		if candidate == id {
			return cmd, true
		}
	}
	return 0, false
}

// DefaultBindings is the binding table registered at startup. Every entry is
// only active while the menu is visible.
func DefaultBindings() []keybinding.Binding {
	return []keybinding.Binding{
		{Command: CommandSelectNext, Keys: []string{"down", "ctrl+n"}, Help: "next", When: ContextKeyVisible},
		{Command: CommandSelectPrevious, Keys: []string{"up", "ctrl+p"}, Help: "previous", When: ContextKeyVisible},
		{Command: CommandAcceptSelected, Keys: []string{"enter", "tab"}, Help: "accept", When: ContextKeyVisible},
	}
}

// Visible reports whether the popup is shown.
func (m Menu[T]) Visible() bool {
	return m.popup.Visible()
}

// Context publishes the menu's context keys.
func (m Menu[T]) Context() keybinding.Context {
	return keybinding.Context{ContextKeyVisible: m.Visible()}
}
