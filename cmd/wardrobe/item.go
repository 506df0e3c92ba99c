package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/imagedata"
	"github.com/HendryAvila/wardrobe/internal/query"
	"github.com/spf13/cobra"
)

func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Add, list, edit and remove clothing items",
	}
	cmd.AddCommand(
		newItemAddCmd(a),
		newItemListCmd(a),
		newItemShowCmd(a),
		newItemEditCmd(a),
		newItemRmCmd(a),
	)
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var category, color, notes, image string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a clothing item",
		Example: `  wardrobe item add --category Shirts --color navy --notes "linen"
  wardrobe item add --category Shoes --image ~/Pictures/boots.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := catalog.Item{Category: category, Color: color, Notes: notes}
			if image != "" {
				url, err := imagedata.FromFile(image, a.cfg.ImageOptions())
				if err != nil {
					return err
				}
				data.ImagePreview = &url
			}

			return a.withStore(func(s *catalog.Store) error {
				item, err := s.AddItem(data)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), item.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category, e.g. Shirts")
	cmd.Flags().StringVar(&color, "color", "", "Color name or CSS value")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&image, "image", "", "Image file to embed (downscaled)")
	return cmd
}

func newItemListCmd(a *app) *cobra.Command {
	var (
		search, category string
		recent           int
		grouped          bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items, optionally filtered",
		Example: `  wardrobe item list --search navy
  wardrobe item list --category Shirts --recent 3
  wardrobe item list --grouped`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				items := query.FilterItems(s.Items(), search, category)
				if recent > 0 {
					items = query.RecentItems(items, recent)
				}

				out := cmd.OutOrStdout()
				if !grouped {
					return printItems(out, items)
				}
				for _, g := range query.GroupAvailableItemsByCategory(items) {
					fmt.Fprintf(out, "%s (%d)\n", g.Category, len(g.Items))
					if err := printItems(out, g.Items); err != nil {
						return err
					}
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive text in color, notes or category")
	cmd.Flags().StringVar(&category, "category", "", "Exact category")
	cmd.Flags().IntVarP(&recent, "recent", "n", 0, "Only the N most recently added")
	cmd.Flags().BoolVarP(&grouped, "grouped", "g", false, "Group by category")
	return cmd
}

func newItemShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				item, ok := s.ItemByID(args[0])
				if !ok {
					return fmt.Errorf("item %q not found", args[0])
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "id:       %s\n", item.ID)
				fmt.Fprintf(out, "category: %s\n", item.DisplayCategory())
				fmt.Fprintf(out, "color:    %s\n", item.Color)
				fmt.Fprintf(out, "notes:    %s\n", item.Notes)
				fmt.Fprintf(out, "image:    %s\n", yesNo(item.HasImage()))
				fmt.Fprintf(out, "added:    %s\n", item.CreatedAt)
				return nil
			})
		},
	}
}

func newItemEditCmd(a *app) *cobra.Command {
	var (
		category, color, notes, image string
		clearImage                    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an item; flags not given are left alone",
		Example: `  wardrobe item edit 0192... --color charcoal
  wardrobe item edit 0192... --notes "" --clear-image`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch catalog.ItemPatch
			flags := cmd.Flags()
			if flags.Changed("category") {
				patch.Category = &category
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			switch {
			case image != "":
				url, err := imagedata.FromFile(image, a.cfg.ImageOptions())
				if err != nil {
					return err
				}
				patch.ImagePreview = &url
			case clearImage:
				empty := ""
				patch.ImagePreview = &empty
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: pass at least one of --category, --color, --notes, --image, --clear-image")
			}

			return a.withStore(func(s *catalog.Store) error {
				ok, err := s.UpdateItem(args[0], patch)
				if !ok {
					return fmt.Errorf("item %q not found", args[0])
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().StringVar(&image, "image", "", "Replace the image with this file")
	cmd.Flags().BoolVar(&clearImage, "clear-image", false, "Remove the image")
	cmd.MarkFlagsMutuallyExclusive("image", "clear-image")
	return cmd
}

func newItemRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item; outfits that use it keep their reference",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				ok, err := s.DeleteItem(args[0])
				if !ok {
					return fmt.Errorf("item %q not found", args[0])
				}
				return err
			})
		},
	}
}

func printItems(w io.Writer, items []catalog.Item) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tCOLOR\tIMAGE\tADDED\tNOTES")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.DisplayCategory(), it.Color, yesNo(it.HasImage()), it.CreatedAt, oneLine(it.Notes))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
