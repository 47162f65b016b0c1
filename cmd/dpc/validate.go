package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/config"
)

var (
	validateConfigFile string

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file without provisioning any resources.
This command checks that the file is properly formatted, that every required
field is populated, and that resource names satisfy the platform's naming
rules.`,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "file", "f", config.DefaultConfigPath, "Path to the configuration file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tracer := otel.Tracer("datum-platform-core")
	ctx, span := tracer.Start(ctx, "cmd.validate")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", validateConfigFile))

	slog.Info("Validating configuration", "config_file", validateConfigFile)

	cfg, err := config.ParseConfig(ctx, afero.NewOsFs(), validateConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Configuration validation failed", "error", err, "file", validateConfigFile)
		return err
	}
	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		slog.Error("Configuration validation failed", "error", err, "file", validateConfigFile)
		return err
	}

	fmt.Printf("✓ Configuration file is valid\n")
	fmt.Printf("  Project: %s (%s)\n", cfg.Project.Name, cfg.Project.Environment)
	fmt.Printf("  Resource group: %s\n", cfg.Project.ResourceGroup)
	fmt.Printf("  Workspace: %s\n", cfg.Workspace.Name)

	return nil
}
