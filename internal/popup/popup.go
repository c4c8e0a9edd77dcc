// Package popup positions a floating box relative to an anchor cell inside
// the terminal viewport and tracks whether it is shown.
package popup

import (
	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	MaxWidth  = 500
	MaxHeight = 500
)

// Msg is implemented by every event the popup handles. Owners forward values
// of this type to Model.Update verbatim.
type Msg interface {
	popupMsg()
}

// ShowMsg makes the popup visible.
type ShowMsg struct{}

// HideMsg hides the popup.
type HideMsg struct{}

// AnchorMsg moves the anchor cell. The popup opens on the row below it.
type AnchorMsg struct {
	X int
	Y int
}

// ViewportMsg reports the size of the area the popup is placed in.
type ViewportMsg struct {
	Width  int
	Height int
}

func (ShowMsg) popupMsg()     {}
func (HideMsg) popupMsg()     {}
func (AnchorMsg) popupMsg()   {}
func (ViewportMsg) popupMsg() {}

// Rect is a placed box in cell coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Model holds anchor, viewport and visibility for one popup.
type Model struct {
	anchorX   int
	anchorY   int
	viewW     int
	viewH     int
	maxWidth  int
	maxHeight int
	visible   bool
}

// New returns a hidden popup bounded by the supplied maximum size. Values
// <= 0 fall back to MaxWidth and MaxHeight.
func New(maxWidth, maxHeight int) Model {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = MaxHeight
	}
	return Model{maxWidth: maxWidth, maxHeight: maxHeight}
}

// Update applies a popup event.
func (m Model) Update(msg Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		if !m.visible {
			m.visible = true
			events.Popup.Show(m.anchorX, m.anchorY)
		}
	case HideMsg:
		if m.visible {
			m.visible = false
			events.Popup.Hide()
		}
	case AnchorMsg:
		x, y := max(msg.X, 0), max(msg.Y, 0)
		if x != m.anchorX || y != m.anchorY {
			m.anchorX, m.anchorY = x, y
			events.Popup.Move(x, y)
		}
	case ViewportMsg:
		m.viewW = max(msg.Width, 0)
		m.viewH = max(msg.Height, 0)
		events.Popup.Viewport(m.viewW, m.viewH)
	}
	return m, nil
}

// Visible reports whether the popup is shown.
func (m Model) Visible() bool {
	return m.visible
}

// Anchor returns the current anchor cell.
func (m Model) Anchor() (int, int) {
	return m.anchorX, m.anchorY
}

// MaxSize returns the configured upper bound for the box.
func (m Model) MaxSize() (int, int) {
	return m.maxWidth, m.maxHeight
}

// Viewport returns the last reported viewport size; zero means unknown.
func (m Model) Viewport() (int, int) {
	return m.viewW, m.viewH
}

// Place computes where a box of the requested content size goes. The box
// opens below the anchor row and flips above it when there is no room; it is
// shifted left when it would cross the right edge. The result never exceeds
// the maximum size or a known viewport.
func (m Model) Place(contentWidth, contentHeight int) Rect {
	w := clamp(contentWidth, 0, m.maxWidth)
	h := clamp(contentHeight, 0, m.maxHeight)
	if m.viewW > 0 {
		w = min(w, m.viewW)
	}
	if m.viewH > 0 {
		h = min(h, m.viewH)
	}

	x := m.anchorX
	y := m.anchorY + 1
	if m.viewH > 0 && y+h > m.viewH {
		if above := m.anchorY - h; above >= 0 {
			y = above
		} else {
			y = max(m.viewH-h, 0)
		}
	}
	if m.viewW > 0 && x+w > m.viewW {
		x = max(m.viewW-w, 0)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Render offsets an already drawn box to its placed position.
func (m Model) Render(box string, r Rect) string {
	if !m.visible || box == "" {
		return ""
	}
	return lipgloss.NewStyle().MarginTop(r.Y).MarginLeft(r.X).Render(box)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
