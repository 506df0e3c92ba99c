// Package query holds the read-side of the wardrobe: pure functions over a
// catalog snapshot for search, filtering, category aggregation, recency
// ordering and resolving combinations against items.
//
// Nothing here mutates its input or touches storage.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/HendryAvila/wardrobe/internal/catalog"
)

// CategoryCount is one row of a category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryGroup is a category with its items, in catalog order.
type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []catalog.Item `json:"items"`
}

// CategoryBreakdown counts items per display category. Rows come out in the
// order each category first appears; blank categories count as
// "Uncategorized".
func CategoryBreakdown(items []catalog.Item) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, it := range items {
		label := it.DisplayCategory()
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, CategoryCount{Category: label, Count: 1})
	}
	return out
}

// GroupAvailableItemsByCategory groups full item records by display
// category, using the same ordering rule as CategoryBreakdown.
func GroupAvailableItemsByCategory(items []catalog.Item) []CategoryGroup {
	var out []CategoryGroup
	index := make(map[string]int)
	for _, it := range items {
		label := it.DisplayCategory()
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryGroup{Category: label})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

// RecentItems returns up to n items, newest createdAt first. Items with
// equal timestamps keep their catalog order. The input is not reordered.
func RecentItems(items []catalog.Item, n int) []catalog.Item {
	if n <= 0 {
		return []catalog.Item{}
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b catalog.Item) int {
		return compareCreatedAt(b.CreatedAt, a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// compareCreatedAt orders two stored timestamps. A value that does not
// parse is older than any value that does; two such values compare as
// plain strings.
func compareCreatedAt(a, b string) int {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return ta.Compare(tb)
}

// FilterItems keeps items that pass both filters:
//   - category: exact match on the stored category; empty means no filter
//   - searchTerm: case-insensitive substring of color, notes or category;
//     empty means no filter
func FilterItems(items []catalog.Item, searchTerm, category string) []catalog.Item {
	term := strings.ToLower(searchTerm)
	out := []catalog.Item{}
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if term != "" && !matchesItem(it, term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesItem(it catalog.Item, lowerTerm string) bool {
	for _, field := range []string{it.Color, it.Notes, it.Category} {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	return false
}

// ResolveComboItems maps the combination's item ids to item records, in the
// combination's order. Ids with no matching item are skipped silently.
func ResolveComboItems(combo catalog.Combination, items []catalog.Item) []catalog.Item {
	byID := indexItems(items)
	out := make([]catalog.Item, 0, len(combo.Items))
	for _, id := range combo.Items {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// DanglingRefs lists the combination's item ids that match no item, in
// order, duplicates included.
func DanglingRefs(combo catalog.Combination, items []catalog.Item) []string {
	byID := indexItems(items)
	var out []string
	for _, id := range combo.Items {
		if _, ok := byID[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// indexItems maps id to the first item carrying it.
func indexItems(items []catalog.Item) map[string]catalog.Item {
	byID := make(map[string]catalog.Item, len(items))
	for _, it := range items {
		if _, seen := byID[it.ID]; !seen {
			byID[it.ID] = it
		}
	}
	return byID
}
