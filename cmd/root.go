package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/motorcast/internal/config"
	"github.com/okian/motorcast/internal/domain/catalog"
	"github.com/okian/motorcast/pkg/logger"
)

var version = "dev"

// cli carries state shared by every subcommand once the root pre-run has
// loaded it.
type cli struct {
	cfg     *config.Config
	catalog *catalog.Catalog
}

func newRootCommand() *cobra.Command {
	state := &cli{}

	cmd := &cobra.Command{
		Use:   "motorcast",
		Short: "Fine-motor progress forecasting and activity suggestions",
		Long: `motorcast forecasts a learner's fine-motor skill progress from dated
evaluations and suggests targeted practice activities.

Configuration is read from defaults, then the YAML file named by
MOTORCAST_CONFIG, then MOTORCAST_* environment variables. Flags win.`,
		Version:      version,
		SilenceUsage: true,
	}

	catalogPath := cmd.PersistentFlags().String("catalog", "", "YAML exercise catalog replacing the built-in one")
	logLevel := cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("catalog") {
			cfg.CatalogPath = *catalogPath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = *logLevel
		}

		if err := logger.Init(
			logger.WithFormat(cfg.LogFormat),
			logger.WithLevel(cfg.LogLevel),
			logger.WithWriter(cmd.ErrOrStderr()),
		); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}
		state.cfg = cfg
		state.catalog = cat
		return nil
	}

	cmd.AddCommand(newServeCommand(state))
	cmd.AddCommand(newForecastCommand(state))
	cmd.AddCommand(newSuggestCommand(state))
	cmd.AddCommand(newSimulateCommand())

	return cmd
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}
