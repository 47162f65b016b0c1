package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/datum-dev/datum-platform-core/pkg/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "dpc",
	Short: "Datum Platform Core - data platform provisioning",
	Long: `Datum Platform Core (DPC) provisions an analytics data platform in an
Azure subscription: a resource group, a secrets vault, data-lake storage, a SQL
server and database, and a Synapse workspace wired together with the role
bindings they need.

Every step checks before it creates, so re-running after a failure converges
the remaining resources instead of duplicating anything.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup structured logging
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)
	},
}

func init() {
	// Load .env file if it exists (silently ignore if not found)
	// This allows users to optionally use .env for local development
	_ = godotenv.Load()

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx := context.Background()

	// Setup OpenTelemetry
	_, shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Error("Failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
