package events

import "github.com/atomicstack/tmux-context-menu/internal/logging"

type MenuTracer struct{}

type CancelReason string

const (
	CancelEscape    CancelReason = "escape"
	CancelInterrupt CancelReason = "interrupt"
	CancelEmpty     CancelReason = "empty"
)

var Menu = MenuTracer{}

func (MenuTracer) Open(count int) {
	logging.Trace("menu.open", map[string]interface{}{"count": count})
}

func (MenuTracer) Command(id string, visible bool) {
	logging.Trace("menu.command", map[string]interface{}{"command": id, "visible": visible})
}

func (MenuTracer) Focus(index int, label string) {
	logging.Trace("menu.focus", map[string]interface{}{"index": index, "label": label})
}

func (MenuTracer) Select(index int, label string) {
	logging.Trace("menu.select", map[string]interface{}{"index": index, "label": label})
}

func (MenuTracer) Cancel(reason CancelReason) {
	logging.Trace("menu.cancel", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Items(count int, query string) {
	logging.Trace("menu.items", map[string]interface{}{"count": count, "query": query})
}
