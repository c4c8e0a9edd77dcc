package ui

import (
	"github.com/atomicstack/tmux-context-menu/internal/contextmenu"
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	"github.com/atomicstack/tmux-context-menu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

var itemRenderer = contextmenu.DefaultRenderer(menu.Item.String)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return nil
	}
	if id, ok := m.registry.Match(keyMsg, m.menu.Context()); ok {
		events.Menu.Command(id, m.menu.Visible())
		if id == CommandCancel {
			reason := events.CancelEscape
			if keyMsg.String() == "ctrl+c" {
				reason = events.CancelInterrupt
			}
			return m.cancel(reason)
		}
		if m.pending {
			return nil
		}
		if cmd, ok := contextmenu.CommandByID(id); ok {
			return m.dispatch(cmd)
		}
		return nil
	}
	if m.pending {
		return nil
	}
	m.handleTextInput(keyMsg)
	return nil
}

func (m *Model) dispatch(cmd contextmenu.Command) tea.Cmd {
	var (
		outcome contextmenu.Outcome[menu.Item]
		teaCmd  tea.Cmd
	)
	m.menu, outcome, teaCmd = m.menu.Update(cmd)
	return tea.Batch(teaCmd, m.applyOutcome(outcome))
}

func (m *Model) applyOutcome(outcome contextmenu.Outcome[menu.Item]) tea.Cmd {
	switch outcome.Kind {
	case contextmenu.OutcomeFocusChanged:
		idx, _ := m.menu.SelectedIndex()
		events.Menu.Focus(idx, outcome.Item.Label)
		m.errMsg = ""
		return nil
	case contextmenu.OutcomeSelected:
		idx, _ := m.menu.SelectedIndex()
		events.Menu.Select(idx, outcome.Item.Label)
		return m.runAction(outcome.Item)
	case contextmenu.OutcomeCancelled:
		return m.cancel(events.CancelEmpty)
	}
	return nil
}

func (m *Model) cancel(reason events.CancelReason) tea.Cmd {
	events.Menu.Cancel(reason)
	return m.finish(Result{Outcome: contextmenu.OutcomeCancelled, Reason: string(reason)})
}

func (m *Model) runAction(item menu.Item) tea.Cmd {
	m.pending = true
	m.errMsg = ""
	m.infoMsg = ""
	return m.bus.Execute(m.ctx, command.Request{
		ID:      m.actionName,
		Label:   item.Label,
		Handler: m.action,
		Item:    item,
	})
}
