package contextmenu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-context-menu/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	rowIndicator = "▌"
	emptyLabel   = "(no entries)"
)

// RenderContext is what a renderer gets besides the item: the shared styles
// and the width of the row in cells. Width 0 asks for the natural width.
type RenderContext struct {
	Styles *theme.Styles
	Width  int
}

// Renderer draws one item as a single row.
type Renderer[T any] func(ctx RenderContext, item T, focused bool) string

// DefaultRenderer draws items as plain text produced by stringify, or
// fmt.Sprint when stringify is nil.
func DefaultRenderer[T any](stringify func(T) string) Renderer[T] {
	if stringify == nil {
		stringify = func(item T) string { return fmt.Sprint(item) }
	}
	return func(ctx RenderContext, item T, focused bool) string {
		return RenderRow(ctx, stringify(item), focused)
	}
}

// RenderRow draws a text row with the selection indicator, truncated and
// padded to ctx.Width so the focused background spans the whole row.
func RenderRow(ctx RenderContext, label string, focused bool) string {
	styles := ctx.Styles
	if styles == nil {
		styles = theme.Default()
	}
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if focused {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := " " + strings.ReplaceAll(label, "\n", " ")
	if ctx.Width > 0 {
		avail := max(ctx.Width-lipgloss.Width(rowIndicator), 0)
		if lipgloss.Width(text) > avail {
			text = truncate.StringWithTail(text, uint(avail), "…")
		}
		if pad := avail - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return renderStyled(indicatorStyle, rowIndicator) + renderStyled(lineStyle, text)
}

func renderStyled(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}
