package main

import (
	"fmt"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show item and outfit counts, items per category and recent additions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				snap := s.Snapshot()
				sum := query.Summarize(snap)
				out := cmd.OutOrStdout()

				fmt.Fprintf(out, "Items:       %d\n", sum.TotalItems)
				fmt.Fprintf(out, "Outfits:     %d\n", sum.TotalCombinations)
				fmt.Fprintf(out, "Categories:  %d\n", len(sum.Categories))
				fmt.Fprintf(out, "With images: %d\n", sum.ItemsWithImages)
				if sum.DanglingRefs > 0 {
					fmt.Fprintf(out, "Missing outfit items: %d\n", sum.DanglingRefs)
				}

				if len(sum.Categories) > 0 {
					fmt.Fprintln(out, "\nBy category:")
					for _, c := range sum.Categories {
						fmt.Fprintf(out, "  %-20s %d\n", c.Category, c.Count)
					}
				}

				if items := query.RecentItems(snap.Items, recent); len(items) > 0 {
					fmt.Fprintln(out, "\nRecently added:")
					return printItems(out, items)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 5, "How many recent items to show")
	return cmd
}
