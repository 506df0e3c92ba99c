package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/imagedata"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── AddItemTool ────────────────────────────────────────────────────────────

// AddItemTool handles the wardrobe_add_item MCP tool.
type AddItemTool struct {
	store  Catalog
	images imagedata.Options
}

// NewAddItemTool creates an AddItemTool.
func NewAddItemTool(store Catalog, images imagedata.Options) *AddItemTool {
	return &AddItemTool{store: store, images: images}
}

// Definition returns the MCP tool definition for wardrobe_add_item.
func (t *AddItemTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_add_item",
		mcp.WithDescription(
			"Add a clothing item to the wardrobe. All fields are optional; "+
				"the id and creation time are assigned automatically.",
		),
		mcp.WithString("category",
			mcp.Description("Category, e.g. Shirts, Pants, Shoes. Blank items show as 'Uncategorized'."),
		),
		mcp.WithString("color",
			mcp.Description("Color name or CSS color value, e.g. 'navy' or '#1e3a8a'"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
		mcp.WithString("image_path",
			mcp.Description("Path to an image file on this machine; it is resized and embedded"),
		),
		mcp.WithString("image_data",
			mcp.Description("An image already encoded as a data URL (data:image/...;base64,...)"),
		),
	)
}

// Handle processes the wardrobe_add_item tool call.
func (t *AddItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	img, err := imageArg(req, t.images)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("image: %v", err)), nil
	}

	item, err := t.store.AddItem(catalog.Item{
		Category:     req.GetString("category", ""),
		Color:        req.GetString("color", ""),
		Notes:        req.GetString("notes", ""),
		ImagePreview: img,
	})
	if err != nil {
		return persistError(fmt.Sprintf("Item %s was added", item.ID), err), nil
	}

	var b strings.Builder
	b.WriteString("Item added:\n\n")
	formatItem(&b, item)
	return mcp.NewToolResultText(b.String()), nil
}

// ─── GetItemTool ────────────────────────────────────────────────────────────

// GetItemTool handles the wardrobe_get_item MCP tool.
type GetItemTool struct {
	store Catalog
}

// NewGetItemTool creates a GetItemTool.
func NewGetItemTool(store Catalog) *GetItemTool {
	return &GetItemTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_get_item.
func (t *GetItemTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_get_item",
		mcp.WithDescription("Show one clothing item by id, including the outfits that use it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item id"),
		),
	)
}

// Handle processes the wardrobe_get_item tool call.
func (t *GetItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	item, ok := t.store.ItemByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("item %q not found", id)), nil
	}

	var b strings.Builder
	formatItem(&b, item)

	var usedIn []string
	for _, c := range t.store.Snapshot().Combinations {
		for _, ref := range c.Items {
			if ref == id {
				usedIn = append(usedIn, c.DisplayName())
				break
			}
		}
	}
	if len(usedIn) > 0 {
		fmt.Fprintf(&b, "\nUsed in %d outfit(s): %s\n", len(usedIn), strings.Join(usedIn, ", "))
	}

	return mcp.NewToolResultText(b.String()), nil
}

// ─── UpdateItemTool ─────────────────────────────────────────────────────────

// UpdateItemTool handles the wardrobe_update_item MCP tool.
type UpdateItemTool struct {
	store  Catalog
	images imagedata.Options
}

// NewUpdateItemTool creates an UpdateItemTool.
func NewUpdateItemTool(store Catalog, images imagedata.Options) *UpdateItemTool {
	return &UpdateItemTool{store: store, images: images}
}

// Definition returns the MCP tool definition for wardrobe_update_item.
func (t *UpdateItemTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_update_item",
		mcp.WithDescription(
			"Update an existing item by id. Only the fields you send are changed; "+
				"send an empty string to clear a text field.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item id to update"),
		),
		mcp.WithString("category",
			mcp.Description("New category"),
		),
		mcp.WithString("color",
			mcp.Description("New color"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes"),
		),
		mcp.WithString("image_path",
			mcp.Description("Replace the image with this file"),
		),
		mcp.WithString("image_data",
			mcp.Description("Replace the image with this data URL"),
		),
		mcp.WithBoolean("clear_image",
			mcp.Description("If true, removes the item's image"),
		),
	)
}

// Handle processes the wardrobe_update_item tool call.
func (t *UpdateItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	patch := catalog.ItemPatch{
		Category: stringPtrArg(req, "category"),
		Color:    stringPtrArg(req, "color"),
		Notes:    stringPtrArg(req, "notes"),
	}

	clearImage := boolArg(req, "clear_image", false)
	if clearImage && (req.GetString("image_path", "") != "" || req.GetString("image_data", "") != "") {
		return mcp.NewToolResultError("'clear_image' cannot be combined with 'image_path' or 'image_data'"), nil
	}

	img, err := imageArg(req, t.images)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("image: %v", err)), nil
	}
	switch {
	case img != nil:
		patch.ImagePreview = img
	case clearImage:
		empty := ""
		patch.ImagePreview = &empty
	}

	if patch.IsEmpty() {
		return mcp.NewToolResultError("nothing to update: send at least one of: category, color, notes, image_path, image_data, clear_image"), nil
	}

	ok, err := t.store.UpdateItem(id, patch)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("item %q not found", id)), nil
	}
	if err != nil {
		return persistError(fmt.Sprintf("Item %s was updated", id), err), nil
	}

	item, _ := t.store.ItemByID(id)
	var b strings.Builder
	b.WriteString("Item updated:\n\n")
	formatItem(&b, item)
	return mcp.NewToolResultText(b.String()), nil
}

// ─── DeleteItemTool ─────────────────────────────────────────────────────────

// DeleteItemTool handles the wardrobe_delete_item MCP tool.
type DeleteItemTool struct {
	store Catalog
}

// NewDeleteItemTool creates a DeleteItemTool.
func NewDeleteItemTool(store Catalog) *DeleteItemTool {
	return &DeleteItemTool{store: store}
}

// Definition returns the MCP tool definition for wardrobe_delete_item.
func (t *DeleteItemTool) Definition() mcp.Tool {
	return mcp.NewTool("wardrobe_delete_item",
		mcp.WithDescription(
			"Delete an item by id. Outfits that reference it keep the reference; "+
				"the missing item is simply skipped when outfits are shown.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Item id to delete"),
		),
	)
}

// Handle processes the wardrobe_delete_item tool call.
func (t *DeleteItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	ok, err := t.store.DeleteItem(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("item %q not found", id)), nil
	}
	if err != nil {
		return persistError(fmt.Sprintf("Item %s was deleted", id), err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Item %s deleted", id)), nil
}
