package events

import "github.com/atomicstack/tmux-context-menu/internal/logging"

type PopupTracer struct{}

type AnchorTracer struct{}

var (
	Popup  = PopupTracer{}
	Anchor = AnchorTracer{}
)

func (PopupTracer) Show(x, y int) {
	logging.Trace("popup.show", map[string]interface{}{"x": x, "y": y})
}

func (PopupTracer) Hide() {
	logging.Trace("popup.hide", nil)
}

func (PopupTracer) Move(x, y int) {
	logging.Trace("popup.anchor", map[string]interface{}{"x": x, "y": y})
}

func (PopupTracer) Viewport(width, height int) {
	logging.Trace("popup.viewport", map[string]interface{}{"width": width, "height": height})
}

func (AnchorTracer) PollError(err error) {
	if err == nil {
		return
	}
	logging.Trace("anchor.error", map[string]interface{}{"error": err.Error()})
}

func (AnchorTracer) Stopped() {
	logging.Trace("anchor.stopped", nil)
}
