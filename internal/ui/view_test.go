package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-context-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestViewShowsItemsAndStatus(t *testing.T) {
	h := newTestHarness(Config{Items: testItems("alpha", "beta"), ShowFooter: true})
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 12})
	view := h.View()
	for _, want := range []string{"alpha", "beta", "type to filter", "2/2", "cancel"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if got := len(strings.Split(view, "\n")); got != 12 {
		t.Fatalf("expected view to fill 12 rows, got %d", got)
	}
}

func TestViewStaysWithinTerminal(t *testing.T) {
	items := make([]menu.Item, 30)
	for i := range items {
		label := fmt.Sprintf("entry-%02d-%s", i, strings.Repeat("x", 50))
		items[i] = menu.Item{ID: label, Label: label}
	}
	h := newTestHarness(Config{Items: items})
	h.Send(tea.WindowSizeMsg{Width: 30, Height: 10})
	for i := 0; i < 20; i++ {
		h.Send(tea.KeyMsg{Type: tea.KeyDown})
	}
	view := h.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d:\n%s", len(lines), view)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("line exceeds terminal width (%d): %q", w, line)
		}
	}
	if !strings.Contains(view, "entry-19") {
		t.Fatalf("expected focused entry to be scrolled into view:\n%s", view)
	}
}

func TestViewShowsFilterAndDetail(t *testing.T) {
	items := []menu.Item{{ID: "make", Label: "make", Detail: "build everything"}}
	h := newTestHarness(Config{Items: items})
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 10})
	h.Send(keyRunes("mk"))
	view := h.View()
	if !strings.Contains(view, "mk") {
		t.Fatalf("expected query in prompt:\n%s", view)
	}
	if !strings.Contains(view, "build everything") {
		t.Fatalf("expected focused item detail in status:\n%s", view)
	}
}

func TestViewEmptyAfterQuit(t *testing.T) {
	h := newTestHarness(Config{Items: testItems("a")})
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if got := h.View(); got != "" {
		t.Fatalf("expected empty view after quit, got %q", got)
	}
}
