package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── AddCombinationTool ─────────────────────────────────────────────────────

// AddCombinationTool handles the wardrobe_add_combination MCP tool.
type AddCombinationTool struct {
	store Catalog
}

// NewAddCombinationTool creates an AddCombinationTool.
func NewAddCombinationTool(store Catalog) *AddCombinationTool {
	return &AddCombinationTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_add_combination.
func (t *AddCombinationTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_add_combination",
		mcp.WithDescription(
			"Save an outfit: a named set of item ids with optional tags. "+
				"Use wardrobe_list_items to find ids.",
		),
		mcp.WithString("name",
			mcp.Description("Outfit name. Blank outfits show as 'Unnamed Outfit'."),
		),
		mcp.WithArray("items",
			mcp.Required(),
			mcp.Description("Item ids in the outfit, in display order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags such as 'work' or 'summer'. A comma-separated string is also accepted."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the wardrobe_add_combination tool call.
func (t *AddCombinationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := stringSliceArg(req, "items")
	if len(ids) == 0 {
		return mcp.NewToolResultError("'items' must list at least one item id"), nil
	}

	var unknown []string
	for _, id := range ids {
		if _, ok := t.store.ItemByID(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown item id(s): %s", strings.Join(unknown, ", "))), nil
	}

	combo, err := t.store.AddCombination(catalog.Combination{
		Name:  req.GetString("name", ""),
		Tags:  stringSliceArg(req, "tags"),
		Items: ids,
	})
	if err != nil {
		return persistError(fmt.Sprintf("Outfit %s was added", combo.ID), err), nil
	}

	var b strings.Builder
	b.WriteString("Outfit saved:\n\n")
	formatCombination(&b, combo, query.ResolveComboItems(combo, itemsOf(t.store)))
	return mcp.NewToolResultText(b.String()), nil
}

// ─── ListCombinationsTool ───────────────────────────────────────────────────

// ListCombinationsTool handles the wardrobe_list_combinations MCP tool.
type ListCombinationsTool struct {
	store Catalog
}

// NewListCombinationsTool creates a ListCombinationsTool.
func NewListCombinationsTool(store Catalog) *ListCombinationsTool {
	return &ListCombinationsTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_list_combinations.
func (t *ListCombinationsTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_list_combinations",
		mcp.WithDescription(
			"List saved outfits with their items. Items that were deleted "+
				"after the outfit was saved are skipped.",
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text to look for in the name or tags"),
		),
		mcp.WithString("tag",
			mcp.Description("Keep only outfits carrying this exact tag"),
		),
		mcp.WithString("id",
			mcp.Description("Show a single outfit by id"),
		),
	)
}

// Handle processes the wardrobe_list_combinations tool call.
func (t *ListCombinationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.store.Snapshot()

	var combos []catalog.Combination
	if id := req.GetString("id", ""); id != "" {
		c, ok := t.store.CombinationByID(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("outfit %q not found", id)), nil
		}
		combos = []catalog.Combination{c}
	} else {
		if len(snap.Combinations) == 0 {
			return mcp.NewToolResultText("No outfits saved yet. Create one with wardrobe_add_combination."), nil
		}
		combos = query.FilterCombinations(snap.Combinations, req.GetString("search", ""), req.GetString("tag", ""))
		if len(combos) == 0 {
			return mcp.NewToolResultText("No outfits match the given filters."), nil
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Outfits (%d)\n\n", len(combos))
	for _, c := range combos {
		formatCombination(&b, c, query.ResolveComboItems(c, snap.Items))
		if missing := query.DanglingRefs(c, snap.Items); len(missing) > 0 {
			fmt.Fprintf(&b, "\n_%d item(s) no longer in the wardrobe._\n", len(missing))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── DeleteCombinationTool ──────────────────────────────────────────────────

// DeleteCombinationTool handles the wardrobe_delete_combination MCP tool.
type DeleteCombinationTool struct {
	store Catalog
}

// NewDeleteCombinationTool creates a DeleteCombinationTool.
func NewDeleteCombinationTool(store Catalog) *DeleteCombinationTool {
	return &DeleteCombinationTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_delete_combination.
func (t *DeleteCombinationTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_delete_combination",
		mcp.WithDescription("Delete a saved outfit by id. The items themselves are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Outfit id to delete"),
		),
	)
}

// Handle processes the wardrobe_delete_combination tool call.
func (t *DeleteCombinationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	ok, err := t.store.DeleteCombination(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("outfit %q not found", id)), nil
	}
	if err != nil {
		return persistError(fmt.Sprintf("Outfit %s was deleted", id), err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Outfit %s deleted", id)), nil
}
