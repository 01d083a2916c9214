package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"NewsDigest/internal/app"
	"NewsDigest/internal/infrastructure/healthcheck"
)

var flagReport string

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe the backend, frontend and database",
	Long:  "healthcheck probes every service and exits 0 when all are healthy, 1 when degraded, 2 when unhealthy and 3 when the check itself fails.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ Health check failed: %v\n", err)
			return &exitError{code: 3}
		}

		var probe healthcheck.DatabaseProbe
		db, store, dbErr := app.OpenStore(cmd.Context(), cfg.Database, logger.With("component", "storage"), false)
		if dbErr == nil {
			defer db.Close()
			probe = store
		}

		checker := healthcheck.NewChecker(cfg.HealthCheck.Timeout, logger,
			healthcheck.DefaultProbes(cfg.HealthCheck, probe, dbErr)...)
		report := checker.Run(cmd.Context())
		healthcheck.WriteText(cmd.OutOrStdout(), report)

		path := flagReport
		if path == "" {
			path = cfg.HealthCheck.ReportPath
		}
		if path != "" {
			if err := healthcheck.WriteJSON(path, report); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "❌ Health check failed: %v\n", err)
				return &exitError{code: 3}
			}
		}

		if code := report.ExitCode(); code != 0 {
			return &exitError{code: code}
		}
		return nil
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&flagReport, "report", "", "write the JSON report to this path")
}
