package main

import (
	"github.com/spf13/cobra"

	"books-api/internal/config"
	"books-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Admin tasks for the books API: migrations, CSV import, tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newImportCmd(),
		newTokenCmd(),
	)

	return root
}

// loadConfig đọc config và init logger cho mọi subcommand
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	return cfg, nil
}
