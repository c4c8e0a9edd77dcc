package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-context-menu/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter narrows the full candidate list with a query edited in place. The
// cursor is a rune offset into Query.
type Filter struct {
	Full   []menu.Item
	Query  string
	Cursor int
}

// NewFilter returns a filter over items with an empty query.
func NewFilter(items []menu.Item) Filter {
	return Filter{Full: CloneItems(items)}
}

// Active reports whether the query narrows the list.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != ""
}

// Items returns the candidates matching the current query.
func (f Filter) Items() []menu.Item {
	return FilterItems(f.Full, f.Query)
}

// Best returns the index within Items of the closest match, or -1 when the
// query is empty or nothing matches.
func (f Filter) Best() int {
	if !f.Active() {
		return -1
	}
	return BestMatchIndex(f.Items(), f.Query)
}

// SetQuery replaces the query and clamps the cursor.
func (f *Filter) SetQuery(query string, cursor int) {
	f.Query = query
	f.Cursor = min(max(cursor, 0), len([]rune(query)))
}

// Pos returns the rune offset of the cursor.
func (f Filter) Pos() int {
	return min(max(f.Cursor, 0), len([]rune(f.Query)))
}

// Clear empties the query.
func (f *Filter) Clear() bool {
	if f.Query == "" {
		return false
	}
	f.SetQuery("", 0)
	return true
}

// Insert inserts text at the cursor.
func (f *Filter) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(f.Query)
	pos := f.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	f.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (f *Filter) DeleteRuneBackward() bool {
	runes := []rune(f.Query)
	pos := f.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	f.SetQuery(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (f *Filter) DeleteWordBackward() bool {
	runes := []rune(f.Query)
	pos := f.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	f.SetQuery(string(updated), i)
	return true
}

// MoveStart moves the cursor to the start of the query.
func (f *Filter) MoveStart() bool {
	if f.Pos() == 0 {
		return false
	}
	f.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end of the query.
func (f *Filter) MoveEnd() bool {
	end := len([]rune(f.Query))
	if f.Pos() == end {
		return false
	}
	f.Cursor = end
	return true
}

// MoveWordBackward moves the cursor one word backward.
func (f *Filter) MoveWordBackward() bool {
	pos := f.Pos()
	i := wordStart([]rune(f.Query), pos)
	if i == pos {
		return false
	}
	f.Cursor = i
	return true
}

// MoveWordForward moves the cursor one word forward.
func (f *Filter) MoveWordForward() bool {
	runes := []rune(f.Query)
	pos := f.Pos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	f.Cursor = i
	return true
}

// MoveRuneBackward moves the cursor one rune backward.
func (f *Filter) MoveRuneBackward() bool {
	if f.Pos() == 0 {
		return false
	}
	f.Cursor = f.Pos() - 1
	return true
}

// MoveRuneForward moves the cursor one rune forward.
func (f *Filter) MoveRuneForward() bool {
	pos := f.Pos()
	if pos >= len([]rune(f.Query)) {
		return false
	}
	f.Cursor = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// FilterItems returns items matching the supplied query, fuzzy first and by
// substring of the label or ID when nothing matches fuzzily.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, menu.Labels(items))
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]menu.Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.String()), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided
// items: an exact match, then a prefix, then a substring, then the closest
// fuzzy match.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(item.ID, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) || strings.HasPrefix(strings.ToLower(item.ID), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.String()), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, menu.Labels(items))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}
