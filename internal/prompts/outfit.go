// Package prompts implements MCP prompt handlers for the wardrobe.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// OutfitPrompt handles the wardrobe-outfit MCP prompt.
// It guides the AI to put together an outfit from the catalog.
type OutfitPrompt struct{}

// NewOutfitPrompt creates an OutfitPrompt.
func NewOutfitPrompt() *OutfitPrompt {
	return &OutfitPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *OutfitPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wardrobe-outfit",
		mcp.WithPromptDescription(
			"Put together an outfit from the clothes in your wardrobe "+
				"and optionally save it as a combination.",
		),
		mcp.WithArgument("occasion",
			mcp.ArgumentDescription("What the outfit is for, e.g. 'job interview' or 'beach day'"),
		),
		mcp.WithArgument("constraints",
			mcp.ArgumentDescription("Anything to respect: weather, colors to avoid, items that must be included"),
		),
	)
}

// Handle processes the wardrobe-outfit prompt request.
func (p *OutfitPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	occasion := "everyday wear"
	var constraints string
	if args := req.Params.Arguments; args != nil {
		if o := strings.TrimSpace(args["occasion"]); o != "" {
			occasion = o
		}
		constraints = strings.TrimSpace(args["constraints"])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Help me choose an outfit for **%s** from my wardrobe.\n\n", occasion)
	if constraints != "" {
		fmt.Fprintf(&b, "Constraints: %s\n\n", constraints)
	}
	b.WriteString("Steps:\n" +
		"1. Call `wardrobe_list_items` with `group_by_category: true` to see what I own\n" +
		"2. Call `wardrobe_list_combinations` to see outfits I already saved, so you can reuse or avoid repeating them\n" +
		"3. Propose one outfit using only item ids that exist, and explain the choice in a sentence or two\n" +
		"4. Ask me whether to save it; if I agree, call `wardrobe_add_combination` with a short name, the item ids and a few tags\n")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Outfit for %s", occasion),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(b.String()),
			},
		},
	}, nil
}
