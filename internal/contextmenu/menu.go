// Package contextmenu implements a selectable popup menu over items of any
// type.
//
// A Menu is an immutable value: every operation returns the next state. The
// menu owns a popup.Model for placement and visibility and forwards popup
// events to it unchanged. Navigation happens through Update, which pairs the
// next state with an Outcome telling the embedding feature what to do:
// nothing, cancel, follow a focus change, or commit a selection.
//
// Selection invariant: a menu without items has no selection, and every
// read path normalizes the selected index into range first.
package contextmenu

import "github.com/atomicstack/tmux-context-menu/internal/popup"

// Menu is the state of one context menu.
type Menu[T any] struct {
	items    []T
	selected int
	active   bool
	popup    popup.Model
	renderer Renderer[T]
}

// New builds a menu with no selection and a hidden popup bounded by the
// default maximum size. A nil renderer falls back to DefaultRenderer with
// fmt-style stringification.
func New[T any](renderer Renderer[T], items []T) Menu[T] {
	if renderer == nil {
		renderer = DefaultRenderer[T](nil)
	}
	return Menu[T]{
		items:    cloneItems(items),
		popup:    popup.New(popup.MaxWidth, popup.MaxHeight),
		renderer: renderer,
	}
}

// Normalize enforces the selection invariant. Without items the selection is
// cleared; an index past the end wraps to the first item and a negative
// index wraps to the last.
func (m Menu[T]) Normalize() Menu[T] {
	n := len(m.items)
	if n == 0 {
		m.active = false
		m.selected = 0
		return m
	}
	if !m.active {
		return m
	}
	if m.selected >= n {
		m.selected = 0
	} else if m.selected < 0 {
		m.selected = n - 1
	}
	return m
}

// SelectNext moves the selection forward, starting at the first item when
// nothing is selected and wrapping after the last.
func (m Menu[T]) SelectNext() Menu[T] {
	if !m.active {
		m.active = true
		m.selected = 0
		return m.Normalize()
	}
	m.selected++
	return m.Normalize()
}

// SelectPrevious moves the selection backward, starting at the last item
// when nothing is selected and wrapping before the first.
func (m Menu[T]) SelectPrevious() Menu[T] {
	if !m.active {
		m.active = true
		m.selected = len(m.items) - 1
		return m.Normalize()
	}
	m.selected--
	return m.Normalize()
}

// Select focuses the item at index i, wrapping out-of-range values the same
// way Normalize does.
func (m Menu[T]) Select(i int) Menu[T] {
	m.active = true
	m.selected = i
	return m.Normalize()
}

// ClearSelection drops the current selection.
func (m Menu[T]) ClearSelection() Menu[T] {
	m.active = false
	m.selected = 0
	return m
}

// CurrentSelection returns the selected item, if any.
func (m Menu[T]) CurrentSelection() (T, bool) {
	m = m.Normalize()
	if !m.active {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// SelectedIndex returns the normalized selected index.
func (m Menu[T]) SelectedIndex() (int, bool) {
	m = m.Normalize()
	if !m.active {
		return -1, false
	}
	return m.selected, true
}

// SetItems replaces the item list wholesale. The previous selection index is
// kept and normalized against the new length, so it may land on a different
// item or wrap to the start.
func (m Menu[T]) SetItems(items []T) Menu[T] {
	m.items = cloneItems(items)
	return m.Normalize()
}

// Items returns a copy of the current items.
func (m Menu[T]) Items() []T {
	return cloneItems(m.items)
}

// Len reports the number of items.
func (m Menu[T]) Len() int {
	return len(m.items)
}

// Popup exposes the embedded popup state for reads.
func (m Menu[T]) Popup() popup.Model {
	return m.popup
}

func cloneItems[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
