package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/tmux-context-menu/internal/tmux"
)

var listCommandsFn = tmux.ListCommands

// LoadTmuxCommands offers every tmux command name with its usage as detail.
func LoadTmuxCommands(ctx Context) ([]Item, error) {
	lines, err := listCommandsFn(ctx.SocketPath)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		detail := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), name))
		items = append(items, Item{ID: name, Label: name, Detail: detail})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("tmux list-commands returned nothing")
	}
	return items, nil
}
