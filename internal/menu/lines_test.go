package menu

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestItemsFromLines(t *testing.T) {
	items := ItemsFromLines([]string{
		"alpha\tfirst letter",
		"",
		"   ",
		"beta",
		"gamma\twith\ttabs\r",
		"\tno value",
	})
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %#v", len(items), items)
	}
	if items[0].ID != "alpha" || items[0].Detail != "first letter" {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
	if items[1].ID != "beta" || items[1].Detail != "" {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
	if items[2].Detail != "with tabs" {
		t.Fatalf("expected inner tabs to collapse, got %q", items[2].Detail)
	}
}

func TestItemsFromReader(t *testing.T) {
	items, err := ItemsFromReader(strings.NewReader("one\ntwo\tsecond\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[1].Label != "two" {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestItemsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	if err := os.WriteFile(path, []byte("make build\tcompile\nmake test\n"), 0o600); err != nil {
		t.Fatalf("write items: %v", err)
	}
	items, err := ItemsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "make build" {
		t.Fatalf("unexpected items: %#v", items)
	}
	if _, err := ItemsFromFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestAlignLinesUpDetails(t *testing.T) {
	items := Align([]Item{
		{ID: "a", Label: "a", Detail: "short"},
		{ID: "longer", Label: "longer", Detail: "x"},
		{ID: "plain", Label: "plain"},
	})
	if items[0].String() != "a       short" {
		t.Fatalf("unexpected aligned label %q", items[0].String())
	}
	if items[1].String() != "longer  x" {
		t.Fatalf("unexpected aligned label %q", items[1].String())
	}
	if items[2].String() != "plain" {
		t.Fatalf("items without detail keep their label, got %q", items[2].String())
	}
}

func TestItemString(t *testing.T) {
	cases := []struct {
		item Item
		want string
	}{
		{Item{ID: "id"}, "id"},
		{Item{ID: "id", Label: "label"}, "label"},
		{Item{ID: "id", Label: "label", Detail: "more"}, "label  more"},
		{Item{ID: "id", Label: "label", Display: "shown"}, "shown"},
	}
	for _, tc := range cases {
		if got := tc.item.String(); got != tc.want {
			t.Errorf("%#v: expected %q, got %q", tc.item, tc.want, got)
		}
	}
}

func TestMergeKeepsFirstOccurrence(t *testing.T) {
	merged := Merge(
		[]Item{{ID: "a", Detail: "file"}, {ID: "b"}},
		[]Item{{ID: "a", Detail: "pane"}, {ID: "c"}},
	)
	if got := strings.Join(Labels(merged), ","); got != "a  file,b,c" {
		t.Fatalf("unexpected merge result %q", got)
	}
}
