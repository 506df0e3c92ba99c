package query

import (
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
)

// FilterCombinations keeps combinations that pass both filters:
//   - tag: exact match against any tag; empty means no filter
//   - searchTerm: case-insensitive substring of the name or any tag;
//     empty means no filter
func FilterCombinations(combos []catalog.Combination, searchTerm, tag string) []catalog.Combination {
	term := strings.ToLower(searchTerm)
	out := []catalog.Combination{}
	for _, c := range combos {
		if tag != "" && !hasTag(c, tag) {
			continue
		}
		if term != "" && !matchesCombination(c, term) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func hasTag(c catalog.Combination, tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesCombination(c catalog.Combination, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(c.Name), lowerTerm) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), lowerTerm) {
			return true
		}
	}
	return false
}

// Summary holds the dashboard figures for a catalog.
type Summary struct {
	TotalItems        int             `json:"total_items"`
	TotalCombinations int             `json:"total_combinations"`
	Categories        []CategoryCount `json:"categories"`
	ItemsWithImages   int             `json:"items_with_images"`
	DanglingRefs      int             `json:"dangling_refs"`
}

// Summarize computes dashboard statistics for a snapshot.
func Summarize(c catalog.Catalog) Summary {
	s := Summary{
		TotalItems:        len(c.Items),
		TotalCombinations: len(c.Combinations),
		Categories:        CategoryBreakdown(c.Items),
	}
	for _, it := range c.Items {
		if it.HasImage() {
			s.ItemsWithImages++
		}
	}
	for _, combo := range c.Combinations {
		s.DanglingRefs += len(DanglingRefs(combo, c.Items))
	}
	return s
}
