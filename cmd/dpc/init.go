package main

import (
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/collect"
	"github.com/datum-dev/datum-platform-core/pkg/config"
)

var (
	initConfigFile    string
	initSkipProvision bool

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Collect configuration interactively and provision the platform",
		Long: `Walk through an interactive questionnaire, write the answers to a
configuration file, and provision the platform.

Use --skip-provision to only write the configuration file; the platform can
then be provisioned later with the provision command.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().StringVarP(&initConfigFile, "file", "f", config.DefaultConfigPath, "Path to write the configuration file")
	initCmd.Flags().BoolVar(&initSkipProvision, "skip-provision", false, "Write the configuration file without provisioning")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("datum-platform-core")
	ctx, span := tracer.Start(ctx, "cmd.init")
	defer span.End()

	span.SetAttributes(
		attribute.String("config.file", initConfigFile),
		attribute.Bool("skip_provision", initSkipProvision),
	)

	fs := afero.NewOsFs()

	resolver, err := collect.NewAzureResolver()
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to create credential", "error", err)
		return err
	}

	cfg, err := collect.New(fs, resolver).Run(ctx)
	if err != nil {
		span.RecordError(err)
		slog.Error("Configuration collection failed", "error", err)
		return err
	}

	// The document keeps the admin password so a later standalone provision
	// run can still create the server. The file is written 0600 and the vault
	// becomes the durable copy once the secret is stored.
	if err := config.WriteConfig(ctx, fs, initConfigFile, cfg); err != nil {
		span.RecordError(err)
		slog.Error("Failed to write configuration", "error", err, "file", initConfigFile)
		return err
	}

	slog.Info("Configuration written", "file", initConfigFile)

	if initSkipProvision {
		slog.Info("Skipping provisioning", "next", "run dpc provision when ready")
		return nil
	}

	return provisionPlatform(ctx, cfg, fs)
}
