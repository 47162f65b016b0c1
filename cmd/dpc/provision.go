package main

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/config"
	"github.com/datum-dev/datum-platform-core/pkg/provision"
	"github.com/datum-dev/datum-platform-core/pkg/status"
)

var (
	provisionConfigFile string

	provisionCmd = &cobra.Command{
		Use:   "provision",
		Short: "Provision the platform from a configuration file",
		Long: `Provision all platform resources described by the configuration file.
Resources that already exist are left untouched, so this command is safe to
re-run after a partial failure.`,
		RunE: runProvision,
	}
)

func init() {
	provisionCmd.Flags().StringVarP(&provisionConfigFile, "file", "f", config.DefaultConfigPath, "Path to the configuration file")
}

func runProvision(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("datum-platform-core")
	ctx, span := tracer.Start(ctx, "cmd.provision")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", provisionConfigFile))

	slog.Info("Starting provisioning", "config_file", provisionConfigFile)

	fs := afero.NewOsFs()
	cfg, err := config.ParseConfig(ctx, fs, provisionConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", provisionConfigFile)
		return err
	}
	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		slog.Error("Configuration is invalid", "error", err, "file", provisionConfigFile)
		return err
	}

	return provisionPlatform(ctx, cfg, fs)
}

// provisionPlatform runs the pipeline with a status handler attached. Shared
// by the provision command and the init command's provisioning phase.
func provisionPlatform(ctx context.Context, cfg *config.PlatformConfig, fs afero.Fs) error {
	// A caller may already have a handler attached; a second one would
	// silently steal its updates.
	if !status.HasChannel(ctx) {
		var cleanupStatus status.CleanupFunc
		ctx, cleanupStatus = status.StartHandler(ctx, statusLogHandler())
		defer cleanupStatus()
	}

	defer func() {
		if ctx.Err() == context.Canceled {
			slog.Warn("Provisioning interrupted by user")
		}
	}()

	clients, err := provision.NewClients(cfg.Identity.SubscriptionID)
	if err != nil {
		slog.Error("Failed to create service clients", "error", err)
		return err
	}

	if err := provision.New(clients, cfg, fs).Run(ctx); err != nil {
		slog.Error("Provisioning failed", "error", err)
		return err
	}

	slog.Info("Provisioning completed successfully",
		"resource_group", cfg.Project.ResourceGroup,
		"workspace", cfg.Workspace.Name,
	)
	return nil
}
