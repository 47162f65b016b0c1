package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/config"
)

// Collector gathers a fully populated PlatformConfig interactively. It either
// produces an internally consistent document or fails before anything is
// written.
type Collector struct {
	fs       afero.Fs
	resolver SessionResolver
	password PasswordReader
}

// New creates a collector. The resolver supplies ambient-session defaults;
// pass a fixed resolver in tests.
func New(fs afero.Fs, resolver SessionResolver) *Collector {
	return &Collector{
		fs:       fs,
		resolver: resolver,
		password: terminalPasswordReader,
	}
}

// Run walks the operator through every parameter group and returns the
// resulting document. Nothing is persisted here; the caller decides where the
// document goes.
func (c *Collector) Run(ctx context.Context) (*config.PlatformConfig, error) {
	tracer := otel.Tracer("datum-platform-core")
	ctx, span := tracer.Start(ctx, "collect.Run")
	defer span.End()

	session, err := c.resolver.Resolve(ctx)
	if err != nil {
		// Session defaults are a convenience; the operator can still type
		// everything by hand. An unresolved principal id stays empty and the
		// provisioner rejects it before creating anything.
		span.RecordError(err)
		session = Session{}
	}

	cfg := &config.PlatformConfig{
		Identity: config.IdentityConfig{
			TenantID:         session.TenantID,
			SubscriptionID:   session.SubscriptionID,
			SubscriptionName: session.SubscriptionName,
			PrincipalID:      session.PrincipalID,
		},
	}

	if err := c.runIdentityGroup(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.runProjectGroup(ctx, cfg); err != nil {
		return nil, err
	}

	ApplyNamingDefaults(cfg)

	if err := c.runResourceGroupNames(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.runDatabaseGroup(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.runSourceControlGroup(ctx, cfg); err != nil {
		return nil, err
	}

	cfg.Scripts = defaultScripts(c.fs)

	if err := cfg.Validate(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("collected configuration is not valid: %w", err)
	}

	span.SetAttributes(
		attribute.String("project", cfg.Project.Name),
		attribute.String("environment", cfg.Project.Environment),
		attribute.Bool("source_control", cfg.SourceControl != nil),
	)

	return cfg, nil
}

// ApplyNamingDefaults fills every empty resource name from the deterministic
// naming templates so an operator can accept defaults with zero typing.
func ApplyNamingDefaults(cfg *config.PlatformConfig) {
	project := cfg.Project.Name
	env := cfg.Project.Environment

	if cfg.Project.ResourceGroup == "" {
		cfg.Project.ResourceGroup = config.DefaultResourceGroupName(cfg.Project.Organization, project, env)
	}
	if cfg.Vault.Name == "" {
		cfg.Vault.Name = config.DefaultVaultName(project, env)
	}
	if cfg.Storage.AccountName == "" {
		cfg.Storage.AccountName = config.DefaultStorageAccountName(project, env)
	}
	if cfg.Storage.SKU == "" {
		cfg.Storage.SKU = "Standard_LRS"
	}
	if cfg.Storage.Filesystem == "" {
		cfg.Storage.Filesystem = "datalake"
	}
	if cfg.Database.ServerName == "" {
		cfg.Database.ServerName = config.DefaultServerName(project, env)
	}
	if cfg.Database.AdminLogin == "" {
		cfg.Database.AdminLogin = "sqladmin"
	}
	if cfg.Database.DatabaseName == "" {
		cfg.Database.DatabaseName = config.Sanitize(project)
	}
	if cfg.Workspace.Name == "" {
		cfg.Workspace.Name = config.DefaultWorkspaceName(project, env)
	}
}

// runIdentityGroup confirms the ambient-session identity defaults.
func (c *Collector) runIdentityGroup(ctx context.Context, cfg *config.PlatformConfig) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tenant ID").
				Description("Azure AD tenant the deployment signs in to").
				Value(&cfg.Identity.TenantID).
				Validate(requireValue("tenant id")),
			huh.NewInput().
				Title("Subscription ID").
				Description("Target subscription for every resource").
				Value(&cfg.Identity.SubscriptionID).
				Validate(requireValue("subscription id")),
		).Title("Deployment Identity"),
	).RunWithContext(ctx)
}

// runProjectGroup prompts for naming inputs and placement.
func (c *Collector) runProjectGroup(ctx context.Context, cfg *config.PlatformConfig) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Organization").
				Placeholder("contoso").
				Value(&cfg.Project.Organization).
				Validate(requireValue("organization")),
			huh.NewInput().
				Title("Project Name").
				Description("Used in every derived resource name").
				Placeholder("lakehouse").
				Value(&cfg.Project.Name).
				Validate(requireValue("project name")),
			huh.NewInput().
				Title("Environment").
				Placeholder("dev").
				Value(&cfg.Project.Environment).
				Validate(requireValue("environment")),
			huh.NewSelect[string]().
				Title("Region").
				Description("Azure region for the resource group").
				Options(RegionsToOptions()...).
				Value(&cfg.Project.Region),
		).Title("Project"),
	).RunWithContext(ctx)
}

// runResourceGroupNames shows the derived resource names for editing.
func (c *Collector) runResourceGroupNames(ctx context.Context, cfg *config.PlatformConfig) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Resource Group").
				Value(&cfg.Project.ResourceGroup).
				Validate(requireValue("resource group")),
			huh.NewInput().
				Title("Key Vault Name").
				Value(&cfg.Vault.Name).
				Validate(requireValue("vault name")),
			huh.NewInput().
				Title("Storage Account Name").
				Description("3-24 lowercase letters and digits").
				Value(&cfg.Storage.AccountName).
				Validate(config.ValidateStorageAccountName),
			huh.NewSelect[string]().
				Title("Storage SKU").
				Options(StorageSKUOptions...).
				Value(&cfg.Storage.SKU),
			huh.NewInput().
				Title("Filesystem").
				Description("Default data-lake container").
				Value(&cfg.Storage.Filesystem).
				Validate(requireValue("filesystem")),
			huh.NewInput().
				Title("Synapse Workspace Name").
				Value(&cfg.Workspace.Name).
				Validate(requireValue("workspace name")),
		).Title("Resource Names"),
	).RunWithContext(ctx)
}

// runDatabaseGroup prompts for SQL server settings and the admin password.
func (c *Collector) runDatabaseGroup(ctx context.Context, cfg *config.PlatformConfig) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SQL Server Name").
				Value(&cfg.Database.ServerName).
				Validate(requireValue("server name")),
			huh.NewInput().
				Title("SQL Admin Login").
				Value(&cfg.Database.AdminLogin).
				Validate(requireValue("admin login")),
			huh.NewInput().
				Title("Database Name").
				Value(&cfg.Database.DatabaseName).
				Validate(requireValue("database name")),
			huh.NewInput().
				Title("Import File (Optional)").
				Description("Path to a BACPAC to import after creation. Leave empty to skip.").
				Value(&cfg.Database.ImportFile),
		).Title("Database"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	password, err := CollectPassword(ctx, c.password)
	if err != nil {
		return err
	}
	cfg.Database.AdminPassword = password
	return nil
}

// runSourceControlGroup gates the linkage block behind a kind selection and
// enforces the all-or-nothing rule on its fields.
func (c *Collector) runSourceControlGroup(ctx context.Context, cfg *config.PlatformConfig) error {
	kind := "none"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Source Control").
				Description("Link the workspace to a repository").
				Options(SourceControlKindOptions...).
				Value(&kind),
		).Title("Source Control"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if kind == "none" {
		cfg.SourceControl = nil
		return nil
	}

	sc := &config.SourceControlConfig{Kind: kind}
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account").
				Description("GitHub owner or DevOps organization").
				Value(&sc.Account).
				Validate(requireValue("account")),
			huh.NewInput().
				Title("Repository").
				Value(&sc.Repository).
				Validate(requireValue("repository")),
			huh.NewInput().
				Title("Collaboration Branch").
				Placeholder("main").
				Value(&sc.Branch).
				Validate(requireValue("branch")),
			huh.NewInput().
				Title("Root Folder").
				Placeholder("/synapse").
				Value(&sc.RootFolder).
				Validate(requireValue("root folder")),
		).Title("Repository"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	cfg.SourceControl = sc
	return nil
}

// defaultScripts returns the init scripts present on disk, in seed order.
func defaultScripts(fs afero.Fs) []string {
	candidates := []string{
		"sql/00_create_views.sql",
		"sql/01_grant_workspace_access.sql",
	}

	var scripts []string
	for _, path := range candidates {
		if ok, err := afero.Exists(fs, path); err == nil && ok {
			scripts = append(scripts, path)
		}
	}
	return scripts
}

// requireValue builds a non-empty validator with a field-specific message.
func requireValue(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
