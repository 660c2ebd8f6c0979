package main

import (
	"context"
	"fmt"
	"os"

	"github.com/RehanAli357/baby-food/config"
	"github.com/RehanAli357/baby-food/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "babyfood",
	Short: "Browse and filter baby food nutrition records",
	Long: `babyfood loads a static dataset of baby food nutrition records once at
startup and lets you filter it by age group and by a search term matched
against food names and nutrient names.

Run without a subcommand to start the web page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = config.NewLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("babyfood failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadCatalog runs the one-time dataset initialization.
func loadCatalog(ctx context.Context) (*services.Catalog, error) {
	src, err := services.NewDatasetSource(ctx, cfg.Dataset)
	if err != nil {
		return nil, err
	}
	catalog, err := services.LoadCatalog(ctx, src, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		zap.String("source", src.Name()),
		zap.Int("records", catalog.Len()),
		zap.Strings("age_groups", catalog.AgeGroups()))
	return catalog, nil
}
