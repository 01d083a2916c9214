package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/usecase"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample article set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		db, store, err := app.OpenStore(cmd.Context(), cfg.Database, logger.With("component", "storage"), true)
		if err != nil {
			return err
		}
		defer db.Close()

		filter := domain.DefaultFilter()
		filter.Limit = domain.MaxPageSize
		inserted := 0
		for _, article := range usecase.Placeholders(filter, time.Now()) {
			ok, err := store.InsertIfAbsent(cmd.Context(), article)
			if err != nil {
				return fmt.Errorf("seed %s: %w", article.URL, err)
			}
			if ok {
				inserted++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d sample articles\n", inserted)
		return nil
	},
}
