package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListItemsTool handles the wardrobe_list_items MCP tool.
type ListItemsTool struct {
	store Catalog
}

// NewListItemsTool creates a ListItemsTool.
func NewListItemsTool(store Catalog) *ListItemsTool {
	return &ListItemsTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_list_items.
func (t *ListItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_list_items",
		mcp.WithDescription(
			"List clothing items. Optionally filter by exact category and a "+
				"case-insensitive search over color, notes and category, or show "+
				"only the most recently added items.",
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text to look for in color, notes or category"),
		),
		mcp.WithString("category",
			mcp.Description("Exact category to keep (as stored, case-sensitive)"),
		),
		mcp.WithNumber("recent",
			mcp.Description("If set, return only the N most recently added matching items"),
		),
		mcp.WithBoolean("group_by_category",
			mcp.Description("If true, group the result under category headings"),
		),
	)
}

// Handle processes the wardrobe_list_items tool call.
func (t *ListItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := t.store.Snapshot().Items
	if len(items) == 0 {
		return mcp.NewToolResultText("The wardrobe is empty. Add an item with wardrobe_add_item."), nil
	}

	items = query.FilterItems(items, req.GetString("search", ""), req.GetString("category", ""))
	if n := intArg(req, "recent", 0); n > 0 {
		items = query.RecentItems(items, n)
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("No items match the given filters."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Items (%d)\n\n", len(items))
	if boolArg(req, "group_by_category", false) {
		for _, g := range query.GroupAvailableItemsByCategory(items) {
			fmt.Fprintf(&b, "### %s (%d)\n", g.Category, len(g.Items))
			for _, it := range g.Items {
				formatItem(&b, it)
			}
			b.WriteString("\n")
		}
	} else {
		for _, it := range items {
			formatItem(&b, it)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── StatsTool ──────────────────────────────────────────────────────────────

// recentOnDashboard is how many recent items the stats view shows.
const recentOnDashboard = 5

// StatsTool handles the wardrobe_stats MCP tool.
type StatsTool struct {
	store Catalog
}

// NewStatsTool creates a StatsTool.
func NewStatsTool(store Catalog) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_stats",
		mcp.WithDescription(
			"Wardrobe overview: item and outfit counts, items per category, "+
				"and the most recently added items.",
		),
	)
}

// Handle processes the wardrobe_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.store.Snapshot()
	sum := query.Summarize(snap)

	var b strings.Builder
	b.WriteString("## Wardrobe Overview\n\n")
	fmt.Fprintf(&b, "- **Items:** %d\n", sum.TotalItems)
	fmt.Fprintf(&b, "- **Outfits:** %d\n", sum.TotalCombinations)
	fmt.Fprintf(&b, "- **Categories:** %d\n", len(sum.Categories))
	fmt.Fprintf(&b, "- **Items with images:** %d\n", sum.ItemsWithImages)
	if sum.DanglingRefs > 0 {
		fmt.Fprintf(&b, "- **Missing outfit items:** %d\n", sum.DanglingRefs)
	}

	if len(sum.Categories) > 0 {
		b.WriteString("\n### By category\n\n")
		for _, c := range sum.Categories {
			fmt.Fprintf(&b, "- %s: %d\n", c.Category, c.Count)
		}
	}

	if recent := query.RecentItems(snap.Items, recentOnDashboard); len(recent) > 0 {
		b.WriteString("\n### Recently added\n\n")
		for _, it := range recent {
			formatItem(&b, it)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
