package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Item is one candidate offered by the context menu. ID is the value acted
// on; Label and Detail are what the user sees.
type Item struct {
	ID      string
	Label   string
	Detail  string
	Display string
}

// String returns the text shown for the item: the aligned display text when
// Align has run, otherwise the label followed by the detail.
func (i Item) String() string {
	if i.Display != "" {
		return i.Display
	}
	label := i.Label
	if label == "" {
		label = i.ID
	}
	if i.Detail == "" {
		return label
	}
	return label + "  " + i.Detail
}

// Context carries runtime data needed by loaders and actions.
type Context struct {
	SocketPath string
	Pane       string
	ClientID   string
}

// Loader produces candidate items.
type Loader func(Context) ([]Item, error)

// Action runs the chosen item and reports an ActionResult.
type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing an action. Output is
// written to stdout once the program has exited.
type ActionResult struct {
	Info   string
	Output string
	Err    error
}

// Merge concatenates lists keeping the first item seen for each ID.
func Merge(lists ...[]Item) []Item {
	seen := make(map[string]struct{})
	var out []Item
	for _, list := range lists {
		for _, item := range list {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Labels returns the visible text of every item, in order.
func Labels(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\t", " "))
}
