package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		db, _, err := app.OpenStore(cmd.Context(), cfg.Database, logger.With("component", "storage"), false)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := db.Migrate(cmd.Context())
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
		}
		return nil
	},
}
