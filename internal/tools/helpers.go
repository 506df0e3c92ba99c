// Package tools implements the MCP tool handlers for the wardrobe catalog.
//
// Each tool follows the same shape:
// - A struct holding its dependencies, injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() validates arguments, calls the catalog store or the query
//   package, and renders a markdown result
//
// User mistakes (missing ids, unknown ids) come back as tool errors, never
// as Go errors, so the host can show them and carry on.
package tools

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/imagedata"
	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog is the part of *catalog.Store the tools depend on.
type Catalog interface {
	AddItem(data catalog.Item) (catalog.Item, error)
	ItemByID(id string) (catalog.Item, bool)
	UpdateItem(id string, patch catalog.ItemPatch) (bool, error)
	DeleteItem(id string) (bool, error)
	AddCombination(data catalog.Combination) (catalog.Combination, error)
	CombinationByID(id string) (catalog.Combination, bool)
	DeleteCombination(id string) (bool, error)
	Snapshot() catalog.Catalog
}

var _ Catalog = (*catalog.Store)(nil)

// itemsOf returns the items of a snapshot; used by tools that only need items.
func itemsOf(store Catalog) []catalog.Item {
	return store.Snapshot().Items
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringPtrArg returns a pointer to the argument when it was sent, even if
// empty, and nil when it was omitted.
func stringPtrArg(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// stringSliceArg accepts either a JSON array of strings or a single
// comma-separated string.
func stringSliceArg(req mcp.CallToolRequest, key string) []string {
	switch v := req.GetArguments()[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}

// imageArg resolves image_path / image_data into a data URL. It returns
// nil when neither was sent.
func imageArg(req mcp.CallToolRequest, opts imagedata.Options) (*string, error) {
	if path := req.GetString("image_path", ""); path != "" {
		url, err := imagedata.FromFile(path, opts)
		if err != nil {
			return nil, err
		}
		return &url, nil
	}
	if data := req.GetString("image_data", ""); data != "" {
		if !imagedata.IsDataURL(data) {
			return nil, fmt.Errorf("'image_data' must be a base64 image data URL (data:image/...;base64,...)")
		}
		if _, _, err := imagedata.Decode(data); err != nil {
			return nil, fmt.Errorf("'image_data': %w", err)
		}
		return &data, nil
	}
	return nil, nil
}

// formatItem renders one item as a markdown list entry.
func formatItem(b *strings.Builder, it catalog.Item) {
	fmt.Fprintf(b, "- **%s**", it.DisplayCategory())
	if it.Color != "" {
		fmt.Fprintf(b, " | color: %s", it.Color)
	}
	if it.HasImage() {
		b.WriteString(" | has image")
	}
	fmt.Fprintf(b, "\n  id: `%s` | added: %s\n", it.ID, it.CreatedAt)
	if it.Notes != "" {
		fmt.Fprintf(b, "  notes: %s\n", it.Notes)
	}
}

// formatCombination renders a combination with its resolved items.
func formatCombination(b *strings.Builder, c catalog.Combination, resolved []catalog.Item) {
	fmt.Fprintf(b, "### %s\n", c.DisplayName())
	fmt.Fprintf(b, "id: `%s` | created: %s\n", c.ID, c.CreatedAt)
	if len(c.Tags) > 0 {
		fmt.Fprintf(b, "tags: %s\n", strings.Join(c.Tags, ", "))
	}
	if len(resolved) == 0 {
		b.WriteString("\n_No items available._\n")
		return
	}
	b.WriteString("\n")
	for _, it := range resolved {
		formatItem(b, it)
	}
}

// persistError describes a mutation that took effect in memory but could
// not be written to storage.
func persistError(what string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf(
		"%s in memory, but saving the catalog failed: %v", what, err,
	))
}
