package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	"github.com/atomicstack/tmux-context-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to filter)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.filter.Pos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput edits the filter query. It reports whether the key was
// consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	before := m.filter.Pos()
	switch msg.String() {
	case "ctrl+u":
		if !m.filter.Clear() {
			return false
		}
		events.Filter.Cleared()
		m.queryChanged(before)
		return true
	case "ctrl+w":
		if !m.filter.DeleteWordBackward() {
			return false
		}
		events.Filter.WordBackspace(m.filter.Query)
		m.queryChanged(before)
		return true
	case "ctrl+a":
		return m.moveFilterCursor(before, m.filter.MoveStart())
	case "ctrl+e":
		return m.moveFilterCursor(before, m.filter.MoveEnd())
	case "alt+b":
		return m.moveFilterCursor(before, m.filter.MoveWordBackward())
	case "alt+f":
		return m.moveFilterCursor(before, m.filter.MoveWordForward())
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.filter.DeleteRuneBackward() {
			return false
		}
		events.Filter.Backspace(m.filter.Query)
		m.queryChanged(before)
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(before, string(msg.Runes))
	case tea.KeySpace:
		return m.appendToFilter(before, " ")
	case tea.KeyLeft:
		return m.moveFilterCursor(before, m.filter.MoveRuneBackward())
	case tea.KeyRight:
		return m.moveFilterCursor(before, m.filter.MoveRuneForward())
	}
	return false
}

func (m *Model) appendToFilter(before int, text string) bool {
	if !m.filter.Insert(text) {
		return false
	}
	events.Filter.Append(m.filter.Query)
	m.queryChanged(before)
	return true
}

func (m *Model) moveFilterCursor(before int, moved bool) bool {
	if !moved {
		return false
	}
	m.noteFilterCursorChange(before)
	events.Filter.Cursor(m.filter.Cursor)
	return true
}

// queryChanged replaces the menu items with the current matches. The best
// match is focused while a query is active; otherwise the previously focused
// item keeps focus when it is still listed.
func (m *Model) queryChanged(before int) {
	m.noteFilterCursorChange(before)
	m.errMsg = ""
	m.infoMsg = ""
	prev, hadPrev := m.menu.CurrentSelection()
	items := m.filter.Items()
	m.menu = m.menu.SetItems(items)
	if best := m.filter.Best(); best >= 0 {
		m.menu = m.menu.Select(best)
	} else if hadPrev {
		if idx := indexOfItem(items, prev.ID); idx >= 0 {
			m.menu = m.menu.Select(idx)
		}
	}
	events.Menu.Items(len(items), m.filter.Query)
	if item, ok := m.menu.CurrentSelection(); ok && (!hadPrev || item.ID != prev.ID) {
		idx, _ := m.menu.SelectedIndex()
		events.Menu.Focus(idx, item.Label)
	}
}

func indexOfItem(items []menu.Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if m.styles.Cursor != nil {
		m.filterCursor.Style = m.styles.Cursor.Copy()
	}
	if m.styles.Filter != nil {
		m.filterCursor.TextStyle = m.styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := render(m.styles.FilterPrompt, "» ")
	text := m.filter.Query
	if text == "" {
		runes := []rune(filterPlaceholder)
		if m.styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = m.styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(m.styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.filter.Pos()
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(m.styles.Filter, string(runes[pos+1:]))
	}
	return prompt + render(m.styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if m.styles.Cursor != nil {
		cursorStyle := m.styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
