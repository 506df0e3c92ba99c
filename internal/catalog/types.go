// Package catalog owns the wardrobe's persisted state: clothing items and
// outfit combinations, held in memory and written wholesale to a slot after
// every mutation.
//
// Design notes:
//   - One Store instance per process, injected into its consumers (no globals)
//   - Reads hand out copies; the only way to change state is through Store
//   - Combinations reference items by id only; deleting an item never
//     touches a combination, and dangling ids are dropped at read time by
//     the query package
package catalog

import (
	"strings"
)

// Display fallbacks. They are never written to storage.
const (
	UncategorizedLabel = "Uncategorized"
	UnnamedOutfitLabel = "Unnamed Outfit"
)

// Item is a single wardrobe piece ("cloth").
type Item struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	// Color is free text, used both as a label and as a CSS color value.
	Color string `json:"color"`
	Notes string `json:"notes"`
	// ImagePreview is a data URL, or nil when the item has no picture.
	ImagePreview *string `json:"imagePreview"`
	CreatedAt    string  `json:"createdAt"`
}

// DisplayCategory returns the category, or "Uncategorized" when blank.
func (i Item) DisplayCategory() string {
	return CategoryLabel(i.Category)
}

// HasImage reports whether the item carries an image payload.
func (i Item) HasImage() bool {
	return i.ImagePreview != nil && *i.ImagePreview != ""
}

// Combination is a named, tagged outfit referencing items by id.
type Combination struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
	// Items may contain duplicates and ids of deleted items.
	Items     []string `json:"items"`
	CreatedAt string   `json:"createdAt"`
}

// DisplayName returns the name, or "Unnamed Outfit" when blank.
func (c Combination) DisplayName() string {
	if c.Name == "" {
		return UnnamedOutfitLabel
	}
	return c.Name
}

// Catalog is the root aggregate persisted as a single document.
type Catalog struct {
	Items        []Item        `json:"items"`
	Combinations []Combination `json:"combinations"`
}

// ItemPatch is a shallow update. Nil fields are left alone; a non-nil
// ImagePreview pointing at "" removes the image.
type ItemPatch struct {
	ID           *string
	Category     *string
	Color        *string
	Notes        *string
	ImagePreview *string
	CreatedAt    *string
}

// IsEmpty reports whether the patch would change nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.ID == nil && p.Category == nil && p.Color == nil &&
		p.Notes == nil && p.ImagePreview == nil && p.CreatedAt == nil
}

// apply merges the patch over item, top-level fields only.
func (p ItemPatch) apply(item *Item) {
	if p.ID != nil {
		item.ID = *p.ID
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.ImagePreview != nil {
		if *p.ImagePreview == "" {
			item.ImagePreview = nil
		} else {
			v := *p.ImagePreview
			item.ImagePreview = &v
		}
	}
	if p.CreatedAt != nil {
		item.CreatedAt = *p.CreatedAt
	}
}

// CategoryLabel maps a stored category to its display form. Only the empty
// string falls back; any other value, blanks included, is shown as stored
// so the label always matches what FilterItems compares against.
func CategoryLabel(category string) string {
	if category == "" {
		return UncategorizedLabel
	}
	return category
}

// NormalizeTags trims every tag and drops the empty ones. Order and
// duplicates are kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits a comma-separated tag field, as typed into a form.
// Example: "casual, work ,," → ["casual", "work"]
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}

// --- copy helpers ---

func cloneItem(i Item) Item {
	if i.ImagePreview != nil {
		v := *i.ImagePreview
		i.ImagePreview = &v
	}
	return i
}

func cloneCombination(c Combination) Combination {
	c.Tags = append([]string{}, c.Tags...)
	c.Items = append([]string{}, c.Items...)
	return c
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

func cloneCombinations(combos []Combination) []Combination {
	out := make([]Combination, len(combos))
	for i, c := range combos {
		out[i] = cloneCombination(c)
	}
	return out
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Items:        cloneItems(c.Items),
		Combinations: cloneCombinations(c.Combinations),
	}
}
