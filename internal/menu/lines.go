package menu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/tmux-context-menu/internal/format/table"
)

// ItemsFromLines turns "value<TAB>detail" lines into items. Lines without a
// tab have no detail; blank lines are dropped.
func ItemsFromLines(lines []string) []Item {
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		value, detail, _ := strings.Cut(line, "\t")
		value = cleanField(value)
		if value == "" {
			continue
		}
		items = append(items, Item{ID: value, Label: value, Detail: cleanField(detail)})
	}
	return items
}

// ItemsFromReader reads items from r in the ItemsFromLines format.
func ItemsFromReader(r io.Reader) ([]Item, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return ItemsFromLines(lines), nil
}

// ItemsFromFile reads items from the file at path.
func ItemsFromFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items file: %w", err)
	}
	defer f.Close()
	return ItemsFromReader(f)
}

// Align lays labels and details out in two columns so that details line up.
// Items without a detail keep their plain label.
func Align(items []Item) []Item {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = item.ID
		}
		rows = append(rows, []string{label, item.Detail})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item
		if item.Detail == "" {
			out[i].Display = ""
			continue
		}
		out[i].Display = strings.TrimRight(formatted[i], " ")
	}
	return out
}
