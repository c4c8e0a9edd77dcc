package menu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-context-menu/internal/tmux"
)

const (
	ActionPrint     = "print"
	ActionInsert    = "insert"
	ActionClipboard = "clipboard"
)

var (
	sendLiteralFn    = tmux.SendLiteral
	writeClipboardFn = clipboard.WriteAll
)

// ActionHandlers maps action names to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		ActionPrint:     PrintAction,
		ActionInsert:    InsertAction,
		ActionClipboard: ClipboardAction,
	}
}

// ActionNames lists the known action names in sorted order.
func ActionNames() []string {
	handlers := ActionHandlers()
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActionFor resolves an action by name.
func ActionFor(name string) (Action, error) {
	action, ok := ActionHandlers()[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("unknown action %q (want one of %s)", name, strings.Join(ActionNames(), ", "))
	}
	return action, nil
}

// PrintAction hands the value back to the caller on stdout.
func PrintAction(_ Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return ActionResult{Output: item.ID}
	}
}

// InsertAction types the value into the context pane.
func InsertAction(ctx Context, item Item) tea.Cmd {
	value := item.ID
	return func() tea.Msg {
		if value == "" {
			return ActionResult{Err: fmt.Errorf("invalid selection")}
		}
		if err := sendLiteralFn(ctx.SocketPath, ctx.Pane, value); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Inserted %s", value)}
	}
}

// ClipboardAction copies the value to the system clipboard.
func ClipboardAction(_ Context, item Item) tea.Cmd {
	value := item.ID
	return func() tea.Msg {
		if value == "" {
			return ActionResult{Err: fmt.Errorf("invalid selection")}
		}
		if err := writeClipboardFn(value); err != nil {
			return ActionResult{Err: fmt.Errorf("clipboard: %w", err)}
		}
		return ActionResult{Info: fmt.Sprintf("Copied %s", value)}
	}
}
