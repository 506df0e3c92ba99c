package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the wardrobe-review MCP prompt.
// It instructs the AI to summarize the wardrobe and point out gaps.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wardrobe-review",
		mcp.WithPromptDescription(
			"Review your wardrobe: counts per category, recent additions, "+
				"outfits with missing items, and what might be worth adding.",
		),
	)
}

// Handle processes the wardrobe-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Wardrobe Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `wardrobe_stats` to get an overview of my wardrobe.\n\n" +
						"Then:\n" +
						"1. Summarize what I own per category in a short table\n" +
						"2. If any outfits reference items that no longer exist, list them with `wardrobe_list_combinations` and suggest replacements\n" +
						"3. Point out categories that look thin compared to the rest\n" +
						"4. Keep it brief and do not change anything without asking",
				),
			},
		},
	}, nil
}
