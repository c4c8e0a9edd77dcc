package ui

import (
	"github.com/atomicstack/tmux-context-menu/internal/contextmenu"
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// handleActionDoneMsg quits after a successful action. A failed action keeps
// the menu open with the error shown so another item can be tried.
func (m *Model) handleActionDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(command.DoneMsg)
	if !ok {
		return nil
	}
	m.pending = false
	if done.Result.Err != nil {
		events.Action.Error(done.Result.Err)
		m.errMsg = done.Result.Err.Error()
		return nil
	}
	events.Action.Success(done.Result.Info)
	return m.finish(Result{
		Outcome: contextmenu.OutcomeSelected,
		Item:    done.Request.Item,
		Output:  done.Result.Output,
		Info:    done.Result.Info,
	})
}
