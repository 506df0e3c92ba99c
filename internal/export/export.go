// Package export writes the catalog out for use outside the app: the raw
// JSON document (same shape as the stored slot) and flat Parquet tables
// for analysis tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/parquet-go/parquet-go"
)

// ItemRow is the flat Parquet form of an item. Image payloads are left out;
// only their presence is recorded.
type ItemRow struct {
	ID        string `parquet:"id"`
	Category  string `parquet:"category"`
	Color     string `parquet:"color"`
	Notes     string `parquet:"notes"`
	HasImage  bool   `parquet:"has_image"`
	CreatedAt string `parquet:"created_at"`
}

// CombinationRow is the flat Parquet form of a combination.
type CombinationRow struct {
	ID        string `parquet:"id"`
	Name      string `parquet:"name"`
	Tags      string `parquet:"tags"`     // comma-separated
	ItemIDs   string `parquet:"item_ids"` // comma-separated, as stored
	Resolved  int32  `parquet:"resolved_items"`
	Dangling  int32  `parquet:"dangling_items"`
	CreatedAt string `parquet:"created_at"`
}

// WriteJSON writes the catalog document, indented.
func WriteJSON(w io.Writer, c catalog.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}

// ItemRows flattens items for Parquet.
func ItemRows(items []catalog.Item) []ItemRow {
	rows := make([]ItemRow, len(items))
	for i, it := range items {
		rows[i] = ItemRow{
			ID:        it.ID,
			Category:  it.Category,
			Color:     it.Color,
			Notes:     it.Notes,
			HasImage:  it.HasImage(),
			CreatedAt: it.CreatedAt,
		}
	}
	return rows
}

// CombinationRows flattens combinations, counting resolved and dangling
// item references against items.
func CombinationRows(combos []catalog.Combination, items []catalog.Item) []CombinationRow {
	rows := make([]CombinationRow, len(combos))
	for i, c := range combos {
		rows[i] = CombinationRow{
			ID:        c.ID,
			Name:      c.Name,
			Tags:      strings.Join(c.Tags, ","),
			ItemIDs:   strings.Join(c.Items, ","),
			Resolved:  int32(len(query.ResolveComboItems(c, items))),
			Dangling:  int32(len(query.DanglingRefs(c, items))),
			CreatedAt: c.CreatedAt,
		}
	}
	return rows
}

// WriteItemsParquet writes the item table.
func WriteItemsParquet(w io.Writer, items []catalog.Item) error {
	return writeParquet(w, ItemRows(items))
}

// WriteCombinationsParquet writes the combination table.
func WriteCombinationsParquet(w io.Writer, combos []catalog.Combination, items []catalog.Item) error {
	return writeParquet(w, CombinationRows(combos, items))
}

func writeParquet[T any](w io.Writer, rows []T) error {
	pw := parquet.NewGenericWriter[T](w)
	if _, err := pw.Write(rows); err != nil {
		_ = pw.Close()
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}
