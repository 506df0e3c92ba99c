package main

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/spf13/cobra"
)

func newComboCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "combo",
		Aliases: []string{"combos", "outfit"},
		Short:   "Save, list and remove outfit combinations",
	}
	cmd.AddCommand(
		newComboAddCmd(a),
		newComboListCmd(a),
		newComboRmCmd(a),
	)
	return cmd
}

func newComboAddCmd(a *app) *cobra.Command {
	var name, tags string

	cmd := &cobra.Command{
		Use:     "add <item-id>...",
		Short:   "Save an outfit made of the given items",
		Example: `  wardrobe combo add --name Office --tags "work, formal" 0192... 0192...`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				for _, id := range args {
					if _, ok := s.ItemByID(id); !ok {
						return fmt.Errorf("item %q not found", id)
					}
				}
				combo, err := s.AddCombination(catalog.Combination{
					Name:  name,
					Tags:  catalog.ParseTags(tags),
					Items: args,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), combo.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Outfit name")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	return cmd
}

func newComboListCmd(a *app) *cobra.Command {
	var search, tag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List outfits with the items they contain",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				snap := s.Snapshot()
				out := cmd.OutOrStdout()
				for _, c := range query.FilterCombinations(snap.Combinations, search, tag) {
					fmt.Fprintf(out, "%s  %s", c.ID, c.DisplayName())
					if len(c.Tags) > 0 {
						fmt.Fprintf(out, "  [%s]", strings.Join(c.Tags, ", "))
					}
					fmt.Fprintln(out)

					resolved := query.ResolveComboItems(c, snap.Items)
					if len(resolved) == 0 {
						fmt.Fprintln(out, "    (no items available)")
					}
					for _, it := range resolved {
						fmt.Fprintf(out, "    - %s %s (%s)\n", it.DisplayCategory(), it.Color, it.ID)
					}
					if missing := query.DanglingRefs(c, snap.Items); len(missing) > 0 {
						fmt.Fprintf(out, "    %d item(s) no longer in the wardrobe\n", len(missing))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text in name or tags")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Exact tag")
	return cmd
}

func newComboRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove an outfit; its items are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				ok, err := s.DeleteCombination(args[0])
				if !ok {
					return fmt.Errorf("outfit %q not found", args[0])
				}
				return err
			})
		},
	}
}
