package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"books-api/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Run the embedded database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus, database.MigrateReset},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := database.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := database.Migrate(cmd.Context(), cfg.Database.DSN(), command); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", command)
			return nil
		},
	}
}
