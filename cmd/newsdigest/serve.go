package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, err := app.New(ctx, cfg, logger, app.Options{Version: version})
		if err != nil {
			logger.Error("application init failed", "error", err)
			return err
		}
		defer application.Close()

		if err := application.Run(ctx); err != nil {
			logger.Error("application stopped", "error", err)
			return err
		}
		return nil
	},
}
