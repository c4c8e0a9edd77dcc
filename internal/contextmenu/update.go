package contextmenu

import (
	"github.com/atomicstack/tmux-context-menu/internal/popup"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is a navigation request understood by Update.
type Command int

const (
	AcceptSelected Command = iota + 1
	SelectPrevious
	SelectNext
)

// OutcomeKind tells the embedding feature what an update means for it.
type OutcomeKind int

const (
	OutcomeNothing OutcomeKind = iota
	OutcomeCancelled
	OutcomeFocusChanged
	OutcomeSelected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFocusChanged:
		return "focus-changed"
	case OutcomeSelected:
		return "selected"
	default:
		return "nothing"
	}
}

// Outcome is the result of one update. Item is set for FocusChanged and
// Selected only.
type Outcome[T any] struct {
	Kind OutcomeKind
	Item T
}

func Nothing[T any]() Outcome[T] {
	return Outcome[T]{Kind: OutcomeNothing}
}

func Cancelled[T any]() Outcome[T] {
	return Outcome[T]{Kind: OutcomeCancelled}
}

func FocusChanged[T any](item T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFocusChanged, Item: item}
}

func Selected[T any](item T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeSelected, Item: item}
}

// Update applies msg and reports the outcome. Commands drive the selection;
// popup events are forwarded to the embedded popup and never produce an
// outcome. The returned tea.Cmd is whatever the popup asked for. Other
// messages leave the menu untouched.
func (m Menu[T]) Update(msg tea.Msg) (Menu[T], Outcome[T], tea.Cmd) {
	switch msg := msg.(type) {
	case Command:
		next, outcome := m.apply(msg)
		return next, outcome, nil
	case popup.Msg:
		var cmd tea.Cmd
		m.popup, cmd = m.popup.Update(msg)
		return m, Nothing[T](), cmd
	}
	return m, Nothing[T](), nil
}

func (m Menu[T]) apply(cmd Command) (Menu[T], Outcome[T]) {
	switch cmd {
	case SelectNext:
		m = m.SelectNext()
		return m, m.focusOutcome()
	case SelectPrevious:
		m = m.SelectPrevious()
		return m, m.focusOutcome()
	case AcceptSelected:
		if item, ok := m.CurrentSelection(); ok {
			return m, Selected(item)
		}
		return m, Cancelled[T]()
	}
	return m, Nothing[T]()
}

func (m Menu[T]) focusOutcome() Outcome[T] {
	if item, ok := m.CurrentSelection(); ok {
		return FocusChanged(item)
	}
	return Nothing[T]()
}
