package command

import (
	"fmt"

	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// DoneMsg reports a finished request back to the update loop.
type DoneMsg struct {
	Request Request
	Result  menu.ActionResult
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace
// logs. The command always yields a DoneMsg so the caller can tell a missing
// handler from a silent success.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return DoneMsg{Request: req, Result: menu.ActionResult{Err: fmt.Errorf("no handler for %s", req.ID)}}
		}
		cmd := req.Handler(ctx, req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return DoneMsg{Request: req}
		}
		msg := cmd()
		result, ok := msg.(menu.ActionResult)
		if !ok {
			result = menu.ActionResult{Err: fmt.Errorf("action %s returned %T", req.ID, msg)}
		}
		events.Command.Result(req.ID, req.Label, resultInfo(result))
		return DoneMsg{Request: req, Result: result}
	}
}

func resultInfo(r menu.ActionResult) string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return r.Info
}
