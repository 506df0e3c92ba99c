package main

import (
	"fmt"

	"github.com/HendryAvila/wardrobe/internal/catalog"
	"github.com/HendryAvila/wardrobe/internal/config"
	"github.com/HendryAvila/wardrobe/internal/logging"
	"github.com/HendryAvila/wardrobe/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	configPath string
	backend    string
	dataDir    string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "wardrobe",
		Short: "Catalog your clothes and the outfits you build from them",
		Long: `Wardrobe keeps clothing items and outfit combinations in a single local
document. Manage it from the command line or expose it to an AI assistant
with "wardrobe serve".

Settings come from an optional YAML or TOML file (--config), a .env file
and WARDROBE_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a .yaml, .yml or .toml config file")
	flags.StringVar(&a.backend, "backend", "", "Storage backend: file, sqlite, postgres or memory")
	flags.StringVar(&a.dataDir, "data-dir", "", "Directory for the file and sqlite backends")
	flags.BoolVar(&a.verbose, "verbose", false, "Log at debug level")

	cmd.AddCommand(
		newItemCmd(a),
		newComboCmd(a),
		newStatsCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Storage.Backend = a.backend
	}
	if a.dataDir != "" {
		cfg.Storage.DataDir = a.dataDir
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	return nil
}

// withStore opens the catalog, runs fn and closes the storage again.
func (a *app) withStore(fn func(*catalog.Store) error) error {
	store, cleanup, err := server.OpenStore(a.cfg, a.log)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(store)
}
