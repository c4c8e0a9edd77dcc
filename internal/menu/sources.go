package menu

import (
	"fmt"
	"io"

	"github.com/atomicstack/tmux-context-menu/internal/tmux"
)

var capturePaneFn = tmux.CapturePane

// Sources selects where candidates come from. Items from earlier sources win
// when IDs collide: files, then stdin, then pane words, then tmux commands.
type Sources struct {
	Files        []string
	Stdin        io.Reader
	PaneWords    bool
	MinWord      int
	CaptureLines int
	TmuxCommands bool
}

// Names lists the enabled sources for tracing.
func (s Sources) Names() []string {
	var names []string
	for _, f := range s.Files {
		names = append(names, "file:"+f)
	}
	if s.Stdin != nil {
		names = append(names, "stdin")
	}
	if s.PaneWords {
		names = append(names, "pane-words")
	}
	if s.TmuxCommands {
		names = append(names, "tmux-commands")
	}
	return names
}

// LoadPaneWords offers the words currently visible in the context pane.
func LoadPaneWords(ctx Context, minLength, lines int) ([]Item, error) {
	captured, err := capturePaneFn(ctx.SocketPath, ctx.Pane, lines)
	if err != nil {
		return nil, err
	}
	items := WordsFromLines(captured, minLength)
	for i := range items {
		items[i].Detail = "pane"
	}
	return items, nil
}

// Load gathers, merges and aligns the items of every enabled source.
func Load(ctx Context, s Sources) ([]Item, error) {
	var lists [][]Item
	for _, path := range s.Files {
		items, err := ItemsFromFile(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, items)
	}
	if s.Stdin != nil {
		items, err := ItemsFromReader(s.Stdin)
		if err != nil {
			return nil, err
		}
		lists = append(lists, items)
	}
	if s.PaneWords {
		items, err := LoadPaneWords(ctx, s.MinWord, s.CaptureLines)
		if err != nil {
			return nil, fmt.Errorf("pane words: %w", err)
		}
		lists = append(lists, items)
	}
	if s.TmuxCommands {
		items, err := LoadTmuxCommands(ctx)
		if err != nil {
			return nil, err
		}
		lists = append(lists, items)
	}
	return Align(Merge(lists...)), nil
}
