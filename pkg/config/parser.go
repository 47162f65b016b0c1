package config

import (
	"context"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultConfigPath is the fixed relative path the collector writes to and
// the provisioner reads from when no override is given.
const DefaultConfigPath = "dpc-config.yaml"

// ParseConfig parses a dpc-config.yaml file and returns the configuration.
// Parsing is lenient; Validate performs the structural checks that must pass
// before any creation call is issued.
func ParseConfig(ctx context.Context, fs afero.Fs, filePath string) (*PlatformConfig, error) {
	tracer := otel.Tracer("datum-platform-core")
	_, span := tracer.Start(ctx, "config.ParseConfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", filePath))

	data, err := afero.ReadFile(fs, filePath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg PlatformConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	span.SetAttributes(
		attribute.String("config.project", cfg.Project.Name),
		attribute.String("config.environment", cfg.Project.Environment),
	)

	return &cfg, nil
}

// WriteConfig serializes the configuration to filePath, overwriting any
// previous document wholesale.
func WriteConfig(ctx context.Context, fs afero.Fs, filePath string, cfg *PlatformConfig) error {
	tracer := otel.Tracer("datum-platform-core")
	_, span := tracer.Start(ctx, "config.WriteConfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", filePath))

	data, err := yaml.Marshal(cfg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, filePath, data, 0600); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write config file %s: %w", filePath, err)
	}

	return nil
}

// Validate checks the document invariants: required fields, resource naming
// rules, and the all-or-nothing source-control block. It never touches the
// control plane.
func (c *PlatformConfig) Validate() error {
	if c.Project.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if c.Project.Environment == "" {
		return fmt.Errorf("project environment is required")
	}
	if c.Project.Region == "" {
		return fmt.Errorf("project region is required")
	}
	if c.Project.ResourceGroup == "" {
		return fmt.Errorf("resource group name is required")
	}
	if c.Vault.Name == "" {
		return fmt.Errorf("vault name is required")
	}

	if err := ValidateStorageAccountName(c.Storage.AccountName); err != nil {
		return err
	}
	if c.Storage.Filesystem == "" {
		return fmt.Errorf("storage filesystem name is required")
	}

	if c.Database.ServerName == "" {
		return fmt.Errorf("database server name is required")
	}
	if Sanitize(c.Database.ServerName) != c.Database.ServerName {
		return fmt.Errorf("server name %q must contain only lowercase letters and digits", c.Database.ServerName)
	}
	if c.Database.AdminLogin == "" {
		return fmt.Errorf("database admin login is required")
	}
	if c.Database.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Workspace.Name == "" {
		return fmt.Errorf("workspace name is required")
	}
	if Sanitize(c.Workspace.Name) != c.Workspace.Name {
		return fmt.Errorf("workspace name %q must contain only lowercase letters and digits", c.Workspace.Name)
	}

	if sc := c.SourceControl; sc != nil {
		if !IsValidSourceControlKind(sc.Kind) {
			return fmt.Errorf("invalid source control kind %q, must be one of: %v", sc.Kind, ValidSourceControlKinds)
		}
		// Linkage is all-or-nothing: a present block needs every field.
		if sc.Account == "" || sc.Repository == "" || sc.Branch == "" || sc.RootFolder == "" {
			return fmt.Errorf("source control linkage requires account, repository, branch and root_folder")
		}
	}

	return nil
}
