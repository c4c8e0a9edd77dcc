package contextmenu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-context-menu/internal/popup"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shown(m Menu[string], msgs ...popup.Msg) Menu[string] {
	m, _, _ = m.Update(popup.ShowMsg{})
	for _, msg := range msgs {
		m, _, _ = m.Update(msg)
	}
	return m
}

func TestViewHiddenIsEmpty(t *testing.T) {
	m := newStringMenu("a", "b")
	assert.Equal(t, "", m.View(nil))
}

func TestViewDrawsEveryItemInFrame(t *testing.T) {
	m := shown(newStringMenu("alpha", "beta", "gamma")).SelectNext()
	out := m.View(nil)
	for _, want := range []string{"alpha", "beta", "gamma", "╭", "╯"} {
		assert.Contains(t, out, want)
	}
}

func TestViewEmptyMenuShowsPlaceholder(t *testing.T) {
	m := shown(newStringMenu())
	assert.Contains(t, m.View(nil), emptyLabel)
}

func TestViewScrollsToSelection(t *testing.T) {
	items := make([]string, 10)
	for i := range items {
		items[i] = fmt.Sprintf("item-%d", i)
	}
	m := shown(newStringMenu(items...), popup.ViewportMsg{Width: 40, Height: 5}).Select(6)
	out := m.View(nil)
	assert.Contains(t, out, "item-6")
	assert.Contains(t, out, "item-4")
	assert.NotContains(t, out, "item-0")
	assert.NotContains(t, out, "item-9")
}

func TestLayoutStaysInsideViewport(t *testing.T) {
	m := shown(newStringMenu(strings.Repeat("x", 200)),
		popup.ViewportMsg{Width: 30, Height: 10},
		popup.AnchorMsg{X: 25, Y: 9},
	)
	rect := m.Layout(nil)
	assert.LessOrEqual(t, rect.X+rect.Width, 30)
	assert.LessOrEqual(t, rect.Y+rect.Height, 10)

	for _, line := range strings.Split(m.View(nil), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30)
	}
}

func TestVisibleWindow(t *testing.T) {
	cases := []struct {
		selected, total, rows int
		start, end            int
	}{
		{-1, 3, 5, 0, 3},
		{-1, 10, 4, 0, 4},
		{0, 10, 4, 0, 4},
		{3, 10, 4, 0, 4},
		{4, 10, 4, 1, 5},
		{9, 10, 4, 6, 10},
		{2, 10, 0, 0, 10},
	}
	for _, tc := range cases {
		start, end := visibleWindow(tc.selected, tc.total, tc.rows)
		assert.Equal(t, tc.start, start, "%+v", tc)
		assert.Equal(t, tc.end, end, "%+v", tc)
	}
}

func TestRenderRowTruncatesAndPads(t *testing.T) {
	row := RenderRow(RenderContext{Width: 8}, "a long label", false)
	require.Equal(t, 8, lipgloss.Width(row))
	assert.Contains(t, row, "…")

	row = RenderRow(RenderContext{Width: 10}, "ab", true)
	assert.Equal(t, 10, lipgloss.Width(row))
	assert.True(t, strings.HasPrefix(row, rowIndicator) || strings.Contains(row, rowIndicator))
}

func TestRenderRowNaturalWidth(t *testing.T) {
	row := RenderRow(RenderContext{}, "one\ntwo", false)
	assert.NotContains(t, row, "\n")
	assert.Contains(t, row, "one two")
}

func TestDefaultRendererUsesStringify(t *testing.T) {
	type pair struct{ k, v string }
	r := DefaultRenderer(func(p pair) string { return p.k + "=" + p.v })
	assert.Contains(t, r(RenderContext{}, pair{"a", "1"}, false), "a=1")

	plain := DefaultRenderer[int](nil)
	assert.Contains(t, plain(RenderContext{}, 42, false), "42")
}
