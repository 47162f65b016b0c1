package config

import (
	"fmt"
	"strings"
)

const (
	// StorageAccountMinLength and StorageAccountMaxLength are the platform
	// limits for storage account names.
	StorageAccountMinLength = 3
	StorageAccountMaxLength = 24
)

// Sanitize strips every non-alphanumeric character and lower-cases the
// result. Resource kinds with strict naming rules (storage accounts, SQL
// servers, workspaces) run their derived names through this. Applying it to
// an already compliant name is a no-op.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultResourceGroupName derives the resource-group default from the
// <org>-<project>-<env> convention.
func DefaultResourceGroupName(org, project, env string) string {
	return fmt.Sprintf("rg-%s-%s-%s", org, project, env)
}

// DefaultVaultName derives the secrets-vault default.
func DefaultVaultName(project, env string) string {
	return fmt.Sprintf("kv-%s-%s", project, env)
}

// DefaultServerName derives the SQL server default.
func DefaultServerName(project, env string) string {
	return Sanitize(fmt.Sprintf("srv%s%s", project, env))
}

// DefaultWorkspaceName derives the analytics-workspace default.
func DefaultWorkspaceName(project, env string) string {
	return Sanitize(fmt.Sprintf("syn%s%s", project, env))
}

// DefaultStorageAccountName derives the storage-account default, sanitized
// to the lowercase-alphanumeric rule and truncated to the platform maximum.
func DefaultStorageAccountName(project, env string) string {
	name := Sanitize("st" + project + env)
	if len(name) > StorageAccountMaxLength {
		name = name[:StorageAccountMaxLength]
	}
	return name
}

// ValidateStorageAccountName checks the lowercase-alphanumeric 3-24 rule.
func ValidateStorageAccountName(name string) error {
	if len(name) < StorageAccountMinLength || len(name) > StorageAccountMaxLength {
		return fmt.Errorf("storage account name %q must be %d-%d characters", name, StorageAccountMinLength, StorageAccountMaxLength)
	}
	if Sanitize(name) != name {
		return fmt.Errorf("storage account name %q must contain only lowercase letters and digits", name)
	}
	return nil
}
