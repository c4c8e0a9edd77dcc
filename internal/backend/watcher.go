package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-context-menu/internal/logging/events"
)

const (
	// DefaultInterval is how often the anchor is polled when no interval is
	// configured.
	DefaultInterval = 200 * time.Millisecond
	minInterval     = 50 * time.Millisecond
)

// Anchor is a cell position in the client viewport.
type Anchor struct {
	X int
	Y int
}

// Source reports the current anchor.
type Source func(ctx context.Context) (Anchor, error)

// Event conveys a moved anchor or a failed poll.
type Event struct {
	Anchor Anchor
	Err    error
}

// Watcher polls an anchor source and publishes an event whenever the anchor
// moves or a poll fails. Repeated identical positions are not republished.
type Watcher struct {
	source   Source
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling source every interval. The first poll happens
// immediately.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if interval < minInterval {
		interval = minInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		throttle: newThrottle(minInterval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	return w
}

// Events returns the channel of anchor events. It is closed once the poller
// exits.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()
	defer close(w.events)
	defer events.Anchor.Stopped()

	var (
		last    Anchor
		hasLast bool
	)
	emit := func() bool {
		if !w.throttle.wait(w.ctx) {
			return false
		}
		anchor, err := w.source(w.ctx)
		if err != nil {
			// the next good poll is always published so the error clears
			events.Anchor.PollError(err)
			hasLast = false
		} else if hasLast && anchor == last {
			return true
		} else {
			last, hasLast = anchor, true
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Anchor: anchor, Err: err}:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
