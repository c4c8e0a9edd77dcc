package menu

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// DefaultMinWordLength is the shortest word offered from a pane capture.
const DefaultMinWordLength = 4

const wordTrim = ".,:;'\"()[]{}<>!?`"

// WordsFromLines collects unique words from captured pane lines, most recent
// first: lines are read bottom up and words right to left. Escape sequences
// are stripped and words shorter than minLength are skipped.
func WordsFromLines(lines []string, minLength int) []Item {
	if minLength <= 0 {
		minLength = DefaultMinWordLength
	}
	seen := make(map[string]struct{})
	var items []Item
	for i := len(lines) - 1; i >= 0; i-- {
		fields := strings.FieldsFunc(ansi.Strip(lines[i]), isWordBreak)
		for j := len(fields) - 1; j >= 0; j-- {
			word := strings.Trim(fields[j], wordTrim)
			if len([]rune(word)) < minLength {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			items = append(items, Item{ID: word, Label: word})
		}
	}
	return items
}

func isWordBreak(r rune) bool {
	return unicode.IsSpace(r) || r == '|' || r == '=' || r == ',' || r == ';'
}
