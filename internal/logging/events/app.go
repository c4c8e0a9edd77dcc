package events

import "github.com/atomicstack/tmux-context-menu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Items(count int, sources []string) {
	logging.Trace("app.items", map[string]interface{}{"count": count, "sources": sources})
}

func (AppTracer) Exit(outcome string, code int) {
	logging.Trace("app.exit", map[string]interface{}{"outcome": outcome, "code": code})
}
