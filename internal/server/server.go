// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the configured storage slot,
// loads the catalog store and injects it into the tools, prompts and
// resources that depend on it. Only wiring lives here.
package server

import (
	"fmt"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/config"
	"github.com/HendryAvila/wardrobe/internal/imagedata"
	"github.com/HendryAvila/wardrobe/internal/prompts"
	"github.com/HendryAvila/wardrobe/internal/resources"
	"github.com/HendryAvila/wardrobe/internal/slot"
	"github.com/HendryAvila/wardrobe/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// OpenStore opens the slot selected by cfg and loads the catalog from it.
//
// The returned cleanup function closes the slot and must be called on
// shutdown (typically via defer). It is always non-nil.
func OpenStore(cfg *config.Config, log *zap.Logger) (*catalog.Store, func(), error) {
	sl, err := slot.Open(cfg.SlotOptions())
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	cleanup := func() {
		if err := sl.Close(); err != nil {
			log.Warn("closing storage", zap.Error(err))
		}
	}

	store := catalog.New(sl, catalog.WithLogger(log))
	if err := store.Load(); err != nil {
		cleanup()
		return nil, noop, fmt.Errorf("loading catalog: %w", err)
	}
	return store, cleanup, nil
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered over the store opened from cfg.
func New(cfg *config.Config, log *zap.Logger) (*server.MCPServer, func(), error) {
	store, cleanup, err := OpenStore(cfg, log)
	if err != nil {
		return nil, noop, err
	}

	s := server.NewMCPServer(
		"wardrobe",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	register(s, store, cfg.ImageOptions())

	log.Info("mcp server ready",
		zap.String("version", Version),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("slot", cfg.Storage.Slot),
	)
	return s, cleanup, nil
}

func register(s *server.MCPServer, store *catalog.Store, images imagedata.Options) {
	// --- Items ---

	addItem := tools.NewAddItemTool(store, images)
	s.AddTool(addItem.Definition(), addItem.Handle)

	getItem := tools.NewGetItemTool(store)
	s.AddTool(getItem.Definition(), getItem.Handle)

	listItems := tools.NewListItemsTool(store)
	s.AddTool(listItems.Definition(), listItems.Handle)

	updateItem := tools.NewUpdateItemTool(store, images)
	s.AddTool(updateItem.Definition(), updateItem.Handle)

	deleteItem := tools.NewDeleteItemTool(store)
	s.AddTool(deleteItem.Definition(), deleteItem.Handle)

	// --- Combinations ---

	addCombo := tools.NewAddCombinationTool(store)
	s.AddTool(addCombo.Definition(), addCombo.Handle)

	listCombos := tools.NewListCombinationsTool(store)
	s.AddTool(listCombos.Definition(), listCombos.Handle)

	deleteCombo := tools.NewDeleteCombinationTool(store)
	s.AddTool(deleteCombo.Definition(), deleteCombo.Handle)

	stats := tools.NewStatsTool(store)
	s.AddTool(stats.Definition(), stats.Handle)

	// --- Prompts ---

	outfit := prompts.NewOutfitPrompt()
	s.AddPrompt(outfit.Definition(), outfit.Handle)

	review := prompts.NewReviewPrompt()
	s.AddPrompt(review.Definition(), review.Handle)

	// --- Resources ---

	res := resources.NewHandler(store)
	s.AddResource(res.SummaryResource(), res.HandleSummary)
}

// noop is the cleanup returned when nothing was opened.
func noop() {}

func serverInstructions() string {
	return `You have access to Wardrobe, a personal clothing catalog.

## WHAT IT HOLDS

- Items: single pieces of clothing with an optional category, color,
  notes and a small embedded image.
- Outfits (combinations): a named list of item ids plus tags.

Deleting an item never edits outfits. An outfit that points at a deleted
item simply shows fewer items; wardrobe_stats reports how many such
references exist.

## HOW TO USE IT

- Before referring to an item, look up its id with wardrobe_list_items.
  Use the search argument for colors or notes, category for an exact
  category, recent to see what was added last.
- To build an outfit, pick ids from wardrobe_list_items and call
  wardrobe_add_combination. Ask the user before saving.
- wardrobe_update_item changes only the fields you send. Send an empty
  string to clear a text field; use clear_image to drop the image.
- Images: pass image_path for a file on this machine. It is downscaled
  before being stored. Never paste large base64 blobs unless the user
  gave you one.
- For an overview use wardrobe_stats or read the wardrobe://catalog/summary
  resource.

## ERRORS

If a tool says a change took effect in memory but saving failed, the
storage is full or unreachable. Tell the user; the change is lost when
the server stops unless a later save succeeds.`
}
