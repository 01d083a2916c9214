package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"NewsDigest/internal/config"
	"NewsDigest/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

var flagConfig string

// exitError carries a process exit code without printing anything extra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:           "newsdigest",
	Short:         "News aggregation backend",
	Long:          "newsdigest fetches articles from a news search API, caches them in a relational store, summarizes them and serves them over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file (default $NEWS_DIGEST_CONFIG)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(healthcheckCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newsdigest %s (commit: %s)\n", version, commit)
	},
}

func loadConfig() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.Logging.Level, cfg.Logging.Format), nil
}
