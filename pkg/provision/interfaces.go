package provision

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
)

// The interfaces below cover only the operations the provisioner issues.
// The SDK adapters in clients.go resolve long-running pollers and pagers so
// every method here is a plain blocking call, which keeps the mocks simple.

// ResourceGroupsAPI defines the resource-group operations used by the provisioner
type ResourceGroupsAPI interface {
	CheckExistence(ctx context.Context, name string) (bool, error)
	CreateOrUpdate(ctx context.Context, name string, parameters armresources.ResourceGroup) (armresources.ResourceGroup, error)
}

// VaultsAPI defines the secrets-vault control-plane operations used by the provisioner
type VaultsAPI interface {
	Get(ctx context.Context, resourceGroup, name string) (armkeyvault.Vault, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armkeyvault.VaultCreateOrUpdateParameters) (armkeyvault.Vault, error)
}

// SecretsAPI defines the vault data-plane operations used by the provisioner
type SecretsAPI interface {
	SetSecret(ctx context.Context, vaultURI, name, value string) error
}

// StorageAccountsAPI defines the storage-account operations used by the provisioner
type StorageAccountsAPI interface {
	GetProperties(ctx context.Context, resourceGroup, name string) (armstorage.Account, error)
	Create(ctx context.Context, resourceGroup, name string, parameters armstorage.AccountCreateParameters) (armstorage.Account, error)
}

// BlobContainersAPI defines the container/filesystem operations used by the provisioner
type BlobContainersAPI interface {
	Get(ctx context.Context, resourceGroup, account, container string) (armstorage.BlobContainer, error)
	Create(ctx context.Context, resourceGroup, account, container string, blobContainer armstorage.BlobContainer) (armstorage.BlobContainer, error)
}

// SQLServersAPI defines the SQL server operations used by the provisioner
type SQLServersAPI interface {
	Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error)
}

// SQLDatabasesAPI defines the logical-database operations used by the provisioner
type SQLDatabasesAPI interface {
	Get(ctx context.Context, resourceGroup, server, name string) (armsql.Database, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, server, name string, parameters armsql.Database) (armsql.Database, error)
}

// SQLFirewallRulesAPI defines the server firewall operations used by the provisioner
type SQLFirewallRulesAPI interface {
	CreateOrUpdate(ctx context.Context, resourceGroup, server, rule string, parameters armsql.FirewallRule) error
}

// WorkspacesAPI defines the analytics-workspace operations used by the provisioner
type WorkspacesAPI interface {
	Get(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error)
	CreateOrUpdate(ctx context.Context, resourceGroup, name string, workspace armsynapse.Workspace) (armsynapse.Workspace, error)
	Update(ctx context.Context, resourceGroup, name string, patch armsynapse.WorkspacePatchInfo) error
}

// WorkspaceFirewallAPI defines the workspace firewall operations used by the provisioner
type WorkspaceFirewallAPI interface {
	CreateOrUpdate(ctx context.Context, resourceGroup, workspace, rule string, info armsynapse.IPFirewallRuleInfo) error
}

// RoleAssignmentsAPI defines the role-binding operations used by the provisioner
type RoleAssignmentsAPI interface {
	ListForScope(ctx context.Context, scope, filter string) ([]*armauthorization.RoleAssignment, error)
	Create(ctx context.Context, scope, name string, parameters armauthorization.RoleAssignmentCreateParameters) error
}

// LinkedServicesAPI defines the workspace dev-endpoint operations used by the provisioner
type LinkedServicesAPI interface {
	Exists(ctx context.Context, workspace, name string) (bool, error)
	CreateOrUpdate(ctx context.Context, workspace, name string, definition []byte) error
}
