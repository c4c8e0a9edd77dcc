package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-context-menu/internal/popup"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View draws the popup at its anchor with the status area pinned to the
// bottom of the screen.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	status := m.statusLines()
	box := m.menu.View(m.styles)
	var lines []string
	if box != "" {
		lines = strings.Split(box, "\n")
	}
	if m.height > 0 {
		area := max(m.height-len(status), 0)
		if len(lines) > area {
			lines = lines[:area]
		}
		for len(lines) < area {
			lines = append(lines, "")
		}
	}
	lines = append(lines, status...)
	if m.width > 0 {
		for i, line := range lines {
			if lipgloss.Width(line) > m.width {
				lines[i] = ansi.Truncate(line, m.width, "…")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusHeight() int {
	if m.showFooter {
		return 3
	}
	return 2
}

func (m *Model) statusLines() []string {
	lines := make([]string, 0, 3)
	count := fmt.Sprintf("  %d/%d", m.menu.Len(), len(m.filter.Full))
	lines = append(lines, m.filterPrompt()+renderStyle(m.styles.Detail, count))
	lines = append(lines, m.messageLine())
	if m.showFooter {
		footer := m.help.ShortHelpView(m.registry.Help(m.menu.Context()))
		lines = append(lines, renderStyle(m.styles.Footer, footer))
	}
	return lines
}

func (m *Model) messageLine() string {
	switch {
	case m.errMsg != "":
		return renderStyle(m.styles.Error, m.errMsg)
	case m.pending:
		return renderStyle(m.styles.Info, fmt.Sprintf("running %s…", m.actionName))
	case m.anchorErr != "":
		return renderStyle(m.styles.Error, "anchor: "+m.anchorErr)
	case m.infoMsg != "":
		return renderStyle(m.styles.Info, m.infoMsg)
	}
	if item, ok := m.menu.CurrentSelection(); ok && item.Detail != "" {
		return renderStyle(m.styles.Detail, item.Detail)
	}
	return ""
}

func renderStyle(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedSize {
		m.width = size.Width
		m.height = size.Height
	}
	return m.syncViewport()
}

func (m *Model) syncViewport() tea.Cmd {
	m.help.Width = m.width
	return m.applyPopup(popup.ViewportMsg{Width: m.width, Height: max(m.height-m.statusHeight(), 1)})
}
