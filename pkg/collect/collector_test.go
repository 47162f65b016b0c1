package collect

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/datum-dev/datum-platform-core/pkg/config"
)

func TestApplyNamingDefaults(t *testing.T) {
	cfg := &config.PlatformConfig{
		Project: config.ProjectConfig{
			Organization: "datum",
			Name:         "analytics",
			Environment:  "dev",
		},
	}

	ApplyNamingDefaults(cfg)

	if cfg.Project.ResourceGroup != "rg-datum-analytics-dev" {
		t.Errorf("ResourceGroup = %q", cfg.Project.ResourceGroup)
	}
	if cfg.Vault.Name != "kv-analytics-dev" {
		t.Errorf("Vault.Name = %q", cfg.Vault.Name)
	}
	if cfg.Storage.AccountName != "stanalyticsdev" {
		t.Errorf("Storage.AccountName = %q", cfg.Storage.AccountName)
	}
	if cfg.Storage.SKU != "Standard_LRS" {
		t.Errorf("Storage.SKU = %q", cfg.Storage.SKU)
	}
	if cfg.Storage.Filesystem != "datalake" {
		t.Errorf("Storage.Filesystem = %q", cfg.Storage.Filesystem)
	}
	if cfg.Database.ServerName != "srvanalyticsdev" {
		t.Errorf("Database.ServerName = %q", cfg.Database.ServerName)
	}
	if cfg.Database.AdminLogin != "sqladmin" {
		t.Errorf("Database.AdminLogin = %q", cfg.Database.AdminLogin)
	}
	if cfg.Database.DatabaseName != "analytics" {
		t.Errorf("Database.DatabaseName = %q", cfg.Database.DatabaseName)
	}
	if cfg.Workspace.Name != "synanalyticsdev" {
		t.Errorf("Workspace.Name = %q", cfg.Workspace.Name)
	}
}

func TestApplyNamingDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &config.PlatformConfig{
		Project: config.ProjectConfig{
			Organization:  "datum",
			Name:          "analytics",
			Environment:   "dev",
			ResourceGroup: "rg-custom",
		},
		Storage:  config.StorageConfig{AccountName: "stcustom"},
		Database: config.DatabaseConfig{ServerName: "srvcustom"},
	}

	ApplyNamingDefaults(cfg)

	if cfg.Project.ResourceGroup != "rg-custom" {
		t.Errorf("ResourceGroup = %q, defaults must not overwrite explicit values", cfg.Project.ResourceGroup)
	}
	if cfg.Storage.AccountName != "stcustom" {
		t.Errorf("Storage.AccountName = %q", cfg.Storage.AccountName)
	}
	if cfg.Database.ServerName != "srvcustom" {
		t.Errorf("Database.ServerName = %q", cfg.Database.ServerName)
	}
}

func TestDefaultScripts(t *testing.T) {
	fs := afero.NewMemMapFs()

	if scripts := defaultScripts(fs); len(scripts) != 0 {
		t.Errorf("defaultScripts on empty tree = %v, want none", scripts)
	}

	if err := afero.WriteFile(fs, "sql/01_grant_workspace_access.sql", []byte("GRANT"), 0o644); err != nil {
		t.Fatal(err)
	}
	scripts := defaultScripts(fs)
	if len(scripts) != 1 || scripts[0] != "sql/01_grant_workspace_access.sql" {
		t.Errorf("defaultScripts = %v", scripts)
	}

	if err := afero.WriteFile(fs, "sql/00_create_views.sql", []byte("CREATE VIEW"), 0o644); err != nil {
		t.Fatal(err)
	}
	scripts = defaultScripts(fs)
	if len(scripts) != 2 || scripts[0] != "sql/00_create_views.sql" {
		t.Errorf("defaultScripts = %v, want seed order preserved", scripts)
	}
}
