// Package resources implements MCP resource handlers for the wardrobe.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (wardrobe://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryURI addresses the catalog summary resource.
const SummaryURI = "wardrobe://catalog/summary"

// recentInSummary caps the recent item list in the summary.
const recentInSummary = 5

// Snapshotter is satisfied by *catalog.Store.
type Snapshotter interface {
	Snapshot() catalog.Catalog
}

// Handler manages wardrobe resource endpoints.
type Handler struct {
	store Snapshotter
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store Snapshotter) *Handler {
	return &Handler{store: store}
}

// recentItem is the summary view of an item; images are left out to keep
// the resource small.
type recentItem struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type summaryDoc struct {
	query.Summary
	Recent []recentItem `json:"recent"`
}

// SummaryResource returns the MCP resource definition for the catalog summary.
func (h *Handler) SummaryResource() mcp.Resource {
	return mcp.NewResource(
		SummaryURI,
		"Wardrobe Summary",
		mcp.WithResourceDescription("Item and outfit counts, items per category and the most recent items"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleSummary returns the current catalog summary as JSON.
func (h *Handler) HandleSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap := h.store.Snapshot()

	doc := summaryDoc{Summary: query.Summarize(snap), Recent: []recentItem{}}
	for _, it := range query.RecentItems(snap.Items, recentInSummary) {
		doc.Recent = append(doc.Recent, recentItem{
			ID:        it.ID,
			Category:  it.DisplayCategory(),
			Color:     it.Color,
			CreatedAt: it.CreatedAt,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
