package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
)

// MockResourceGroups is a mock implementation of ResourceGroupsAPI for testing
type MockResourceGroups struct {
	CheckExistenceFunc func(ctx context.Context, name string) (bool, error)
	CreateOrUpdateFunc func(ctx context.Context, name string, parameters armresources.ResourceGroup) (armresources.ResourceGroup, error)
}

var _ ResourceGroupsAPI = (*MockResourceGroups)(nil)

func (m *MockResourceGroups) CheckExistence(ctx context.Context, name string) (bool, error) {
	if m.CheckExistenceFunc != nil {
		return m.CheckExistenceFunc(ctx, name)
	}
	return false, fmt.Errorf("CheckExistenceFunc not implemented")
}

func (m *MockResourceGroups) CreateOrUpdate(ctx context.Context, name string, parameters armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, name, parameters)
	}
	return armresources.ResourceGroup{}, fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockVaults is a mock implementation of VaultsAPI for testing
type MockVaults struct {
	GetFunc            func(ctx context.Context, resourceGroup, name string) (armkeyvault.Vault, error)
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, name string, parameters armkeyvault.VaultCreateOrUpdateParameters) (armkeyvault.Vault, error)
}

var _ VaultsAPI = (*MockVaults)(nil)

func (m *MockVaults) Get(ctx context.Context, resourceGroup, name string) (armkeyvault.Vault, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroup, name)
	}
	return armkeyvault.Vault{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockVaults) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armkeyvault.VaultCreateOrUpdateParameters) (armkeyvault.Vault, error) {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, name, parameters)
	}
	return armkeyvault.Vault{}, fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockSecrets is a mock implementation of SecretsAPI for testing
type MockSecrets struct {
	SetSecretFunc func(ctx context.Context, vaultURI, name, value string) error
}

var _ SecretsAPI = (*MockSecrets)(nil)

func (m *MockSecrets) SetSecret(ctx context.Context, vaultURI, name, value string) error {
	if m.SetSecretFunc != nil {
		return m.SetSecretFunc(ctx, vaultURI, name, value)
	}
	return fmt.Errorf("SetSecretFunc not implemented")
}

// MockStorageAccounts is a mock implementation of StorageAccountsAPI for testing
type MockStorageAccounts struct {
	GetPropertiesFunc func(ctx context.Context, resourceGroup, name string) (armstorage.Account, error)
	CreateFunc        func(ctx context.Context, resourceGroup, name string, parameters armstorage.AccountCreateParameters) (armstorage.Account, error)
}

var _ StorageAccountsAPI = (*MockStorageAccounts)(nil)

func (m *MockStorageAccounts) GetProperties(ctx context.Context, resourceGroup, name string) (armstorage.Account, error) {
	if m.GetPropertiesFunc != nil {
		return m.GetPropertiesFunc(ctx, resourceGroup, name)
	}
	return armstorage.Account{}, fmt.Errorf("GetPropertiesFunc not implemented")
}

func (m *MockStorageAccounts) Create(ctx context.Context, resourceGroup, name string, parameters armstorage.AccountCreateParameters) (armstorage.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, resourceGroup, name, parameters)
	}
	return armstorage.Account{}, fmt.Errorf("CreateFunc not implemented")
}

// MockBlobContainers is a mock implementation of BlobContainersAPI for testing
type MockBlobContainers struct {
	GetFunc    func(ctx context.Context, resourceGroup, account, container string) (armstorage.BlobContainer, error)
	CreateFunc func(ctx context.Context, resourceGroup, account, container string, blobContainer armstorage.BlobContainer) (armstorage.BlobContainer, error)
}

var _ BlobContainersAPI = (*MockBlobContainers)(nil)

func (m *MockBlobContainers) Get(ctx context.Context, resourceGroup, account, container string) (armstorage.BlobContainer, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroup, account, container)
	}
	return armstorage.BlobContainer{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockBlobContainers) Create(ctx context.Context, resourceGroup, account, container string, blobContainer armstorage.BlobContainer) (armstorage.BlobContainer, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, resourceGroup, account, container, blobContainer)
	}
	return armstorage.BlobContainer{}, fmt.Errorf("CreateFunc not implemented")
}

// MockSQLServers is a mock implementation of SQLServersAPI for testing
type MockSQLServers struct {
	GetFunc            func(ctx context.Context, resourceGroup, name string) (armsql.Server, error)
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error)
}

var _ SQLServersAPI = (*MockSQLServers)(nil)

func (m *MockSQLServers) Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroup, name)
	}
	return armsql.Server{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockSQLServers) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error) {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, name, parameters)
	}
	return armsql.Server{}, fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockSQLDatabases is a mock implementation of SQLDatabasesAPI for testing
type MockSQLDatabases struct {
	GetFunc            func(ctx context.Context, resourceGroup, server, name string) (armsql.Database, error)
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, server, name string, parameters armsql.Database) (armsql.Database, error)
}

var _ SQLDatabasesAPI = (*MockSQLDatabases)(nil)

func (m *MockSQLDatabases) Get(ctx context.Context, resourceGroup, server, name string) (armsql.Database, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroup, server, name)
	}
	return armsql.Database{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockSQLDatabases) CreateOrUpdate(ctx context.Context, resourceGroup, server, name string, parameters armsql.Database) (armsql.Database, error) {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, server, name, parameters)
	}
	return armsql.Database{}, fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockSQLFirewallRules is a mock implementation of SQLFirewallRulesAPI for testing
type MockSQLFirewallRules struct {
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, server, rule string, parameters armsql.FirewallRule) error
}

var _ SQLFirewallRulesAPI = (*MockSQLFirewallRules)(nil)

func (m *MockSQLFirewallRules) CreateOrUpdate(ctx context.Context, resourceGroup, server, rule string, parameters armsql.FirewallRule) error {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, server, rule, parameters)
	}
	return fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockWorkspaces is a mock implementation of WorkspacesAPI for testing
type MockWorkspaces struct {
	GetFunc            func(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error)
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, name string, workspace armsynapse.Workspace) (armsynapse.Workspace, error)
	UpdateFunc         func(ctx context.Context, resourceGroup, name string, patch armsynapse.WorkspacePatchInfo) error
}

var _ WorkspacesAPI = (*MockWorkspaces)(nil)

func (m *MockWorkspaces) Get(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroup, name)
	}
	return armsynapse.Workspace{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockWorkspaces) CreateOrUpdate(ctx context.Context, resourceGroup, name string, workspace armsynapse.Workspace) (armsynapse.Workspace, error) {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, name, workspace)
	}
	return armsynapse.Workspace{}, fmt.Errorf("CreateOrUpdateFunc not implemented")
}

func (m *MockWorkspaces) Update(ctx context.Context, resourceGroup, name string, patch armsynapse.WorkspacePatchInfo) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, resourceGroup, name, patch)
	}
	return fmt.Errorf("UpdateFunc not implemented")
}

// MockWorkspaceFirewall is a mock implementation of WorkspaceFirewallAPI for testing
type MockWorkspaceFirewall struct {
	CreateOrUpdateFunc func(ctx context.Context, resourceGroup, workspace, rule string, info armsynapse.IPFirewallRuleInfo) error
}

var _ WorkspaceFirewallAPI = (*MockWorkspaceFirewall)(nil)

func (m *MockWorkspaceFirewall) CreateOrUpdate(ctx context.Context, resourceGroup, workspace, rule string, info armsynapse.IPFirewallRuleInfo) error {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, resourceGroup, workspace, rule, info)
	}
	return fmt.Errorf("CreateOrUpdateFunc not implemented")
}

// MockRoleAssignments is a mock implementation of RoleAssignmentsAPI for testing
type MockRoleAssignments struct {
	ListForScopeFunc func(ctx context.Context, scope, filter string) ([]*armauthorization.RoleAssignment, error)
	CreateFunc       func(ctx context.Context, scope, name string, parameters armauthorization.RoleAssignmentCreateParameters) error
}

var _ RoleAssignmentsAPI = (*MockRoleAssignments)(nil)

func (m *MockRoleAssignments) ListForScope(ctx context.Context, scope, filter string) ([]*armauthorization.RoleAssignment, error) {
	if m.ListForScopeFunc != nil {
		return m.ListForScopeFunc(ctx, scope, filter)
	}
	return nil, fmt.Errorf("ListForScopeFunc not implemented")
}

func (m *MockRoleAssignments) Create(ctx context.Context, scope, name string, parameters armauthorization.RoleAssignmentCreateParameters) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, scope, name, parameters)
	}
	return fmt.Errorf("CreateFunc not implemented")
}

// MockLinkedServices is a mock implementation of LinkedServicesAPI for testing
type MockLinkedServices struct {
	ExistsFunc         func(ctx context.Context, workspace, name string) (bool, error)
	CreateOrUpdateFunc func(ctx context.Context, workspace, name string, definition []byte) error
}

var _ LinkedServicesAPI = (*MockLinkedServices)(nil)

func (m *MockLinkedServices) Exists(ctx context.Context, workspace, name string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, workspace, name)
	}
	return false, fmt.Errorf("ExistsFunc not implemented")
}

func (m *MockLinkedServices) CreateOrUpdate(ctx context.Context, workspace, name string, definition []byte) error {
	if m.CreateOrUpdateFunc != nil {
		return m.CreateOrUpdateFunc(ctx, workspace, name, definition)
	}
	return fmt.Errorf("CreateOrUpdateFunc not implemented")
}
