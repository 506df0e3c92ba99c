package query

import (
	"testing"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/google/go-cmp/cmp"
)

func ids(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sampleItems() []catalog.Item {
	return []catalog.Item{
		{ID: "a", Category: "Shirts", Color: "Blue", Notes: "oxford", CreatedAt: "2026-01-01T10:00:00.000000000Z"},
		{ID: "b", Category: "Pants", Color: "black", Notes: "navy blue stitching", CreatedAt: "2026-01-01T11:00:00.000000000Z"},
		{ID: "c", Category: "Shirts", Color: "white", Notes: "", CreatedAt: "2026-01-01T12:00:00.000000000Z"},
		{ID: "d", Category: "", Color: "red", Notes: "scarf", CreatedAt: "2026-01-01T09:00:00.000000000Z"},
		{ID: "e", Category: "Bluetooth gear", Color: "grey", CreatedAt: "2026-01-01T08:00:00.000000000Z"},
	}
}

// --- CategoryBreakdown ---

func TestCategoryBreakdown(t *testing.T) {
	items := []catalog.Item{{Category: "Shirts"}, {Category: "Shirts"}, {Category: ""}}
	want := []CategoryCount{{"Shirts", 2}, {"Uncategorized", 1}}

	if diff := cmp.Diff(want, CategoryBreakdown(items)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryBreakdown_FirstOccurrenceOrder(t *testing.T) {
	items := []catalog.Item{{Category: "Shoes"}, {Category: ""}, {Category: "Accessories"}, {Category: "Shoes"}}
	got := CategoryBreakdown(items)

	want := []CategoryCount{{"Shoes", 2}, {"Uncategorized", 1}, {"Accessories", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryBreakdown_BlankCategoryAgreesWithFilter(t *testing.T) {
	items := []catalog.Item{{ID: "s", Category: " "}, {ID: "e", Category: ""}}

	want := []CategoryCount{{" ", 1}, {"Uncategorized", 1}}
	if diff := cmp.Diff(want, CategoryBreakdown(items)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// Every breakdown label other than the fallback selects exactly its count.
	if got := FilterItems(items, "", " "); len(got) != 1 || got[0].ID != "s" {
		t.Errorf("FilterItems(category=\" \") = %v", ids(got))
	}
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

// --- GroupAvailableItemsByCategory ---

func TestGroupAvailableItemsByCategory(t *testing.T) {
	groups := GroupAvailableItemsByCategory(sampleItems())

	var got [][]string
	var names []string
	for _, g := range groups {
		names = append(names, g.Category)
		got = append(got, ids(g.Items))
	}
	if diff := cmp.Diff([]string{"Shirts", "Pants", "Uncategorized", "Bluetooth gear"}, names); diff != "" {
		t.Errorf("category order mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"a", "c"}, {"b"}, {"d"}, {"e"}}, got); diff != "" {
		t.Errorf("grouping mismatch:\n%s", diff)
	}
}

// --- RecentItems ---

func TestRecentItems_NewestFirst(t *testing.T) {
	items := []catalog.Item{
		{ID: "t1", CreatedAt: "2026-01-01T00:00:01.000000000Z"},
		{ID: "t2", CreatedAt: "2026-01-01T00:00:02.000000000Z"},
		{ID: "t3", CreatedAt: "2026-01-01T00:00:03.000000000Z"},
	}
	if diff := cmp.Diff([]string{"t3", "t2"}, ids(RecentItems(items, 2))); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestRecentItems_StableOnTies(t *testing.T) {
	same := "2026-01-01T00:00:00.000000000Z"
	items := []catalog.Item{
		{ID: "x", CreatedAt: same},
		{ID: "y", CreatedAt: "2026-01-02T00:00:00.000000000Z"},
		{ID: "z", CreatedAt: same},
	}
	if diff := cmp.Diff([]string{"y", "x", "z"}, ids(RecentItems(items, 10))); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestRecentItems_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := ids(items)

	_ = RecentItems(items, 3)

	if diff := cmp.Diff(before, ids(items)); diff != "" {
		t.Errorf("input reordered:\n%s", diff)
	}
}

func TestRecentItems_MixedPrecisionTimestamps(t *testing.T) {
	// Browser-style millisecond stamps next to nanosecond ones.
	items := []catalog.Item{
		{ID: "ms", CreatedAt: "2026-01-01T00:00:00.1Z"},
		{ID: "ns", CreatedAt: "2026-01-01T00:00:00.120000000Z"},
	}
	if diff := cmp.Diff([]string{"ns", "ms"}, ids(RecentItems(items, 2))); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestRecentItems_UnparsableTimestampsSortLast(t *testing.T) {
	// "zzz" sorts after every date as a string; it must still come last.
	items := []catalog.Item{
		{ID: "bad-z", CreatedAt: "zzz"},
		{ID: "old", CreatedAt: "2025-01-01T00:00:00.000000000Z"},
		{ID: "bad-a", CreatedAt: "aaa"},
		{ID: "new", CreatedAt: "2026-01-01T00:00:00.000000000Z"},
		{ID: "empty", CreatedAt: ""},
	}
	want := []string{"new", "old", "bad-z", "bad-a", "empty"}
	if diff := cmp.Diff(want, ids(RecentItems(items, 10))); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCompareCreatedAt_Consistent(t *testing.T) {
	vals := []string{"zzz", "2025-01-01T00:00:00Z", "aaa", "2026-01-01T00:00:00Z", ""}
	for _, a := range vals {
		for _, b := range vals {
			if got, rev := compareCreatedAt(a, b), compareCreatedAt(b, a); got != -rev {
				t.Errorf("compare(%q,%q)=%d but compare(%q,%q)=%d", a, b, got, b, a, rev)
			}
			for _, c := range vals {
				if compareCreatedAt(a, b) < 0 && compareCreatedAt(b, c) < 0 && compareCreatedAt(a, c) >= 0 {
					t.Errorf("not transitive: %q < %q < %q", a, b, c)
				}
			}
		}
	}
}

func TestRecentItems_Bounds(t *testing.T) {
	if got := RecentItems(sampleItems(), 0); len(got) != 0 {
		t.Errorf("n=0 should return nothing, got %d", len(got))
	}
	if got := RecentItems(sampleItems(), -1); len(got) != 0 {
		t.Errorf("negative n should return nothing, got %d", len(got))
	}
	if got := RecentItems(sampleItems(), 100); len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}
}

// --- FilterItems ---

func TestFilterItems(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"no filters", "", "", []string{"a", "b", "c", "d", "e"}},
		{"search across color notes category", "blue", "", []string{"a", "b", "e"}},
		{"search is case-insensitive", "BLUE", "", []string{"a", "b", "e"}},
		{"category exact", "", "Shirts", []string{"a", "c"}},
		{"category is not substring", "", "Shirt", []string{}},
		{"both filters AND", "blue", "Shirts", []string{"a"}},
		{"no match", "purple", "", []string{}},
		{"notes only", "scarf", "", []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterItems(sampleItems(), tt.term, tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterItems_UncategorizedLabelIsNotSearchable(t *testing.T) {
	got := FilterItems([]catalog.Item{{ID: "d", Category: ""}}, "uncategorized", "")
	if len(got) != 0 {
		t.Errorf("display fallback should not match search, got %v", ids(got))
	}
}

// --- ResolveComboItems / DanglingRefs ---

func TestResolveComboItems_DropsDangling(t *testing.T) {
	items := []catalog.Item{{ID: "A", Color: "a"}, {ID: "B", Color: "b"}}
	combo := catalog.Combination{Items: []string{"A", "B", "X"}}

	got := ResolveComboItems(combo, items)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveComboItems_PreservesComboOrderAndDuplicates(t *testing.T) {
	items := []catalog.Item{{ID: "A"}, {ID: "B"}}
	combo := catalog.Combination{Items: []string{"B", "X", "A", "B"}}

	if diff := cmp.Diff([]string{"B", "A", "B"}, ids(ResolveComboItems(combo, items))); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestDanglingRefs(t *testing.T) {
	items := []catalog.Item{{ID: "A"}}
	combo := catalog.Combination{Items: []string{"X", "A", "Y", "X"}}

	if diff := cmp.Diff([]string{"X", "Y", "X"}, DanglingRefs(combo, items)); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
	if got := DanglingRefs(catalog.Combination{Items: []string{"A"}}, items); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

// --- Combinations ---

func TestFilterCombinations(t *testing.T) {
	combos := []catalog.Combination{
		{ID: "1", Name: "Office Monday", Tags: []string{"work", "formal"}},
		{ID: "2", Name: "", Tags: []string{"casual"}},
		{ID: "3", Name: "Beach day", Tags: []string{"summer", "casual"}},
	}

	tests := []struct {
		name, term, tag string
		want            []string
	}{
		{"none", "", "", []string{"1", "2", "3"}},
		{"tag exact", "", "casual", []string{"2", "3"}},
		{"term in name", "beach", "", []string{"3"}},
		{"term in tag", "FORM", "", []string{"1"}},
		{"both", "beach", "casual", []string{"3"}},
		{"tag not substring", "", "cas", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range FilterCombinations(combos, tt.term, tt.tag) {
				got = append(got, c.ID)
			}
			if got == nil {
				got = []string{}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	img := "data:image/png;base64,AA"
	c := catalog.Catalog{
		Items: []catalog.Item{
			{ID: "A", Category: "Shirts", ImagePreview: &img},
			{ID: "B", Category: ""},
		},
		Combinations: []catalog.Combination{
			{ID: "c1", Items: []string{"A", "gone"}},
			{ID: "c2", Items: []string{"B", "gone", "also-gone"}},
		},
	}

	want := Summary{
		TotalItems:        2,
		TotalCombinations: 2,
		Categories:        []CategoryCount{{"Shirts", 1}, {"Uncategorized", 1}},
		ItemsWithImages:   1,
		DanglingRefs:      3,
	}
	if diff := cmp.Diff(want, Summarize(c)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
