package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/export"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newExportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON or Parquet",
		Long: `Exports the catalog.

json writes the stored document, images included, to --out or stdout.
parquet writes items.parquet and combinations.parquet into the --out
directory; images are reduced to a has_image flag.`,
		Example: `  wardrobe export > backup.json
  wardrobe export --format parquet --out ./analysis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *catalog.Store) error {
				snap := s.Snapshot()
				switch format {
				case "json":
					if out == "" {
						return export.WriteJSON(cmd.OutOrStdout(), snap)
					}
					return writeFile(out, func(w io.Writer) error {
						return export.WriteJSON(w, snap)
					})
				case "parquet":
					if out == "" {
						return fmt.Errorf("--out directory is required for parquet")
					}
					if err := os.MkdirAll(out, 0o755); err != nil {
						return fmt.Errorf("creating %s: %w", out, err)
					}
					var g errgroup.Group
					g.Go(func() error {
						return writeFile(filepath.Join(out, "items.parquet"), func(w io.Writer) error {
							return export.WriteItemsParquet(w, snap.Items)
						})
					})
					g.Go(func() error {
						return writeFile(filepath.Join(out, "combinations.parquet"), func(w io.Writer) error {
							return export.WriteCombinationsParquet(w, snap.Combinations, snap.Items)
						})
					})
					return g.Wait()
				default:
					return fmt.Errorf("unknown format %q: must be json or parquet", format)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or parquet")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (json) or directory (parquet)")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
