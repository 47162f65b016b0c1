package config

// PlatformConfig represents the parsed dpc-config.yaml structure.
// The collector writes it exactly once per run; the provisioner treats it
// as a read-only input document.
type PlatformConfig struct {
	Identity      IdentityConfig       `yaml:"identity"`
	Project       ProjectConfig        `yaml:"project"`
	Storage       StorageConfig        `yaml:"storage"`
	Vault         VaultConfig          `yaml:"vault"`
	Database      DatabaseConfig       `yaml:"database"`
	Workspace     WorkspaceConfig      `yaml:"workspace"`
	SourceControl *SourceControlConfig `yaml:"source_control,omitempty"`
	Scripts       []string             `yaml:"scripts,omitempty"`

	// Using map to capture additional fields for lenient parsing
	AdditionalFields map[string]interface{} `yaml:",inline"`
}

// IdentityConfig holds the deployment identity resolved from the ambient
// authenticated session at collection time.
type IdentityConfig struct {
	TenantID         string `yaml:"tenant_id"`
	SubscriptionID   string `yaml:"subscription_id"`
	SubscriptionName string `yaml:"subscription_name,omitempty"`
	PrincipalID      string `yaml:"principal_id"`
}

// ProjectConfig holds naming and placement for the whole platform.
type ProjectConfig struct {
	Organization  string `yaml:"organization"`
	Name          string `yaml:"name"`
	Environment   string `yaml:"environment"`
	Region        string `yaml:"region"`
	ResourceGroup string `yaml:"resource_group"`
}

// StorageConfig describes the data-lake storage account.
type StorageConfig struct {
	AccountName string `yaml:"account_name"`
	SKU         string `yaml:"sku"`
	Filesystem  string `yaml:"filesystem"`
}

// VaultConfig describes the secrets vault.
type VaultConfig struct {
	Name string `yaml:"name"`
}

// DatabaseConfig describes the SQL server and logical database.
// AdminPassword is only read at server-creation time; once the secret is
// stored the vault is the durable copy and the file copy is never re-read.
type DatabaseConfig struct {
	ServerName    string `yaml:"server_name"`
	AdminLogin    string `yaml:"admin_login"`
	AdminPassword string `yaml:"admin_password,omitempty"`
	DatabaseName  string `yaml:"database_name"`
	ImportFile    string `yaml:"import_file,omitempty"`
}

// WorkspaceConfig describes the analytics workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// SourceControlConfig links the workspace to a repository. The fields are
// all-or-nothing: when the block is present every field must be populated.
type SourceControlConfig struct {
	Kind       string `yaml:"kind"` // github or devops
	Account    string `yaml:"account"`
	Repository string `yaml:"repository"`
	Branch     string `yaml:"branch"`
	RootFolder string `yaml:"root_folder"`
}

// ValidSourceControlKinds lists the supported repository kinds.
var ValidSourceControlKinds = []string{"github", "devops"}

// IsValidSourceControlKind checks if the kind string is supported.
func IsValidSourceControlKind(kind string) bool {
	for _, k := range ValidSourceControlKinds {
		if k == kind {
			return true
		}
	}
	return false
}
