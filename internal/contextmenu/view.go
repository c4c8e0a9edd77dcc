package contextmenu

import (
	"strings"

	"github.com/atomicstack/tmux-context-menu/internal/popup"
	"github.com/atomicstack/tmux-context-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// borderCells is the horizontal and vertical space the frame takes.
const borderCells = 2

// View draws the menu inside its frame at the popup position. Hidden menus
// draw nothing.
func (m Menu[T]) View(styles *theme.Styles) string {
	if !m.Visible() {
		return ""
	}
	if styles == nil {
		styles = theme.Default()
	}
	rect := m.Layout(styles)
	ctx := RenderContext{Styles: styles, Width: max(rect.Width-borderCells, 1)}
	rows := max(rect.Height-borderCells, 1)

	var lines []string
	if len(m.items) == 0 {
		lines = []string{renderStyled(styles.Empty, padRight(" "+emptyLabel, ctx.Width))}
	} else {
		selected, ok := m.SelectedIndex()
		start, end := visibleWindow(selected, len(m.items), rows)
		for i := start; i < end; i++ {
			lines = append(lines, m.renderer(ctx, m.items[i], ok && i == selected))
		}
	}
	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	if styles.Border != nil {
		frame = *styles.Border
	}
	return m.popup.Render(frame.Render(strings.Join(lines, "\n")), rect)
}

// Layout returns where the framed menu will be drawn.
func (m Menu[T]) Layout(styles *theme.Styles) popup.Rect {
	if styles == nil {
		styles = theme.Default()
	}
	width := lipgloss.Width(" "+emptyLabel) + 1
	for _, item := range m.items {
		width = max(width, lipgloss.Width(m.renderer(RenderContext{Styles: styles}, item, false)))
	}
	height := max(len(m.items), 1)
	return m.popup.Place(width+borderCells, height+borderCells)
}

// visibleWindow returns the [start, end) range of rows to draw so that the
// selected row stays on screen. Without a selection the window starts at the
// top.
func visibleWindow(selected, total, rows int) (int, int) {
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	if start > total-rows {
		start = total - rows
	}
	return start, start + rows
}

func padRight(text string, width int) string {
	if pad := width - lipgloss.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
