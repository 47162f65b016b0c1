package provision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

const devEndpointScope = "https://dev.azuresynapse.net/.default"

// Clients bundles the service clients the provisioner talks to. Tests swap
// individual fields for mocks; production code builds the set with NewClients.
type Clients struct {
	SubscriptionID string

	ResourceGroups     ResourceGroupsAPI
	Vaults             VaultsAPI
	Secrets            SecretsAPI
	StorageAccounts    StorageAccountsAPI
	BlobContainers     BlobContainersAPI
	SQLServers         SQLServersAPI
	SQLDatabases       SQLDatabasesAPI
	SQLFirewallRules   SQLFirewallRulesAPI
	Workspaces         WorkspacesAPI
	WorkspaceFirewall  WorkspaceFirewallAPI
	RoleAssignments    RoleAssignmentsAPI
	LinkedServices     LinkedServicesAPI
}

// NewClients builds the full client set for a subscription using the default
// credential chain (environment, workload identity, managed identity, CLI).
func NewClients(subscriptionID string) (*Clients, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("creating credential: %w", err)
	}

	resourceGroups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating resource groups client: %w", err)
	}
	vaults, err := armkeyvault.NewVaultsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating vaults client: %w", err)
	}
	accounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating storage accounts client: %w", err)
	}
	containers, err := armstorage.NewBlobContainersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating blob containers client: %w", err)
	}
	servers, err := armsql.NewServersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating sql servers client: %w", err)
	}
	databases, err := armsql.NewDatabasesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating sql databases client: %w", err)
	}
	firewalls, err := armsql.NewFirewallRulesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating sql firewall client: %w", err)
	}
	workspaces, err := armsynapse.NewWorkspacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating workspaces client: %w", err)
	}
	workspaceFirewall, err := armsynapse.NewIPFirewallRulesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating workspace firewall client: %w", err)
	}
	roleAssignments, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("creating role assignments client: %w", err)
	}

	return &Clients{
		SubscriptionID:    subscriptionID,
		ResourceGroups:    &resourceGroupsClient{inner: resourceGroups},
		Vaults:            &vaultsClient{inner: vaults},
		Secrets:           &secretsClient{cred: cred},
		StorageAccounts:   &storageAccountsClient{inner: accounts},
		BlobContainers:    &blobContainersClient{inner: containers},
		SQLServers:        &sqlServersClient{inner: servers},
		SQLDatabases:      &sqlDatabasesClient{inner: databases},
		SQLFirewallRules:  &sqlFirewallRulesClient{inner: firewalls},
		Workspaces:        &workspacesClient{inner: workspaces},
		WorkspaceFirewall: &workspaceFirewallClient{inner: workspaceFirewall},
		RoleAssignments:   &roleAssignmentsClient{inner: roleAssignments},
		LinkedServices:    &linkedServicesClient{cred: cred, httpClient: http.DefaultClient},
	}, nil
}

// isNotFound reports whether err is a service response with status 404.
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

type resourceGroupsClient struct {
	inner *armresources.ResourceGroupsClient
}

var _ ResourceGroupsAPI = (*resourceGroupsClient)(nil)

func (c *resourceGroupsClient) CheckExistence(ctx context.Context, name string) (bool, error) {
	resp, err := c.inner.CheckExistence(ctx, name, nil)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *resourceGroupsClient) CreateOrUpdate(ctx context.Context, name string, parameters armresources.ResourceGroup) (armresources.ResourceGroup, error) {
	resp, err := c.inner.CreateOrUpdate(ctx, name, parameters, nil)
	if err != nil {
		return armresources.ResourceGroup{}, err
	}
	return resp.ResourceGroup, nil
}

type vaultsClient struct {
	inner *armkeyvault.VaultsClient
}

var _ VaultsAPI = (*vaultsClient)(nil)

func (c *vaultsClient) Get(ctx context.Context, resourceGroup, name string) (armkeyvault.Vault, error) {
	resp, err := c.inner.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armkeyvault.Vault{}, err
	}
	return resp.Vault, nil
}

func (c *vaultsClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armkeyvault.VaultCreateOrUpdateParameters) (armkeyvault.Vault, error) {
	poller, err := c.inner.BeginCreateOrUpdate(ctx, resourceGroup, name, parameters, nil)
	if err != nil {
		return armkeyvault.Vault{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armkeyvault.Vault{}, err
	}
	return resp.Vault, nil
}

// secretsClient talks to the vault data plane. The vault client is built per
// call because the vault URI is only known once the vault step has run.
type secretsClient struct {
	cred azcore.TokenCredential
}

var _ SecretsAPI = (*secretsClient)(nil)

func (c *secretsClient) SetSecret(ctx context.Context, vaultURI, name, value string) error {
	client, err := azsecrets.NewClient(vaultURI, c.cred, nil)
	if err != nil {
		return err
	}
	_, err = client.SetSecret(ctx, name, azsecrets.SetSecretParameters{Value: &value}, nil)
	return err
}

type storageAccountsClient struct {
	inner *armstorage.AccountsClient
}

var _ StorageAccountsAPI = (*storageAccountsClient)(nil)

func (c *storageAccountsClient) GetProperties(ctx context.Context, resourceGroup, name string) (armstorage.Account, error) {
	resp, err := c.inner.GetProperties(ctx, resourceGroup, name, nil)
	if err != nil {
		return armstorage.Account{}, err
	}
	return resp.Account, nil
}

func (c *storageAccountsClient) Create(ctx context.Context, resourceGroup, name string, parameters armstorage.AccountCreateParameters) (armstorage.Account, error) {
	poller, err := c.inner.BeginCreate(ctx, resourceGroup, name, parameters, nil)
	if err != nil {
		return armstorage.Account{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armstorage.Account{}, err
	}
	return resp.Account, nil
}

type blobContainersClient struct {
	inner *armstorage.BlobContainersClient
}

var _ BlobContainersAPI = (*blobContainersClient)(nil)

func (c *blobContainersClient) Get(ctx context.Context, resourceGroup, account, container string) (armstorage.BlobContainer, error) {
	resp, err := c.inner.Get(ctx, resourceGroup, account, container, nil)
	if err != nil {
		return armstorage.BlobContainer{}, err
	}
	return resp.BlobContainer, nil
}

func (c *blobContainersClient) Create(ctx context.Context, resourceGroup, account, container string, blobContainer armstorage.BlobContainer) (armstorage.BlobContainer, error) {
	resp, err := c.inner.Create(ctx, resourceGroup, account, container, blobContainer, nil)
	if err != nil {
		return armstorage.BlobContainer{}, err
	}
	return resp.BlobContainer, nil
}

type sqlServersClient struct {
	inner *armsql.ServersClient
}

var _ SQLServersAPI = (*sqlServersClient)(nil)

func (c *sqlServersClient) Get(ctx context.Context, resourceGroup, name string) (armsql.Server, error) {
	resp, err := c.inner.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	return resp.Server, nil
}

func (c *sqlServersClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, parameters armsql.Server) (armsql.Server, error) {
	poller, err := c.inner.BeginCreateOrUpdate(ctx, resourceGroup, name, parameters, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsql.Server{}, err
	}
	return resp.Server, nil
}

type sqlDatabasesClient struct {
	inner *armsql.DatabasesClient
}

var _ SQLDatabasesAPI = (*sqlDatabasesClient)(nil)

func (c *sqlDatabasesClient) Get(ctx context.Context, resourceGroup, server, name string) (armsql.Database, error) {
	resp, err := c.inner.Get(ctx, resourceGroup, server, name, nil)
	if err != nil {
		return armsql.Database{}, err
	}
	return resp.Database, nil
}

func (c *sqlDatabasesClient) CreateOrUpdate(ctx context.Context, resourceGroup, server, name string, parameters armsql.Database) (armsql.Database, error) {
	poller, err := c.inner.BeginCreateOrUpdate(ctx, resourceGroup, server, name, parameters, nil)
	if err != nil {
		return armsql.Database{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsql.Database{}, err
	}
	return resp.Database, nil
}

type sqlFirewallRulesClient struct {
	inner *armsql.FirewallRulesClient
}

var _ SQLFirewallRulesAPI = (*sqlFirewallRulesClient)(nil)

func (c *sqlFirewallRulesClient) CreateOrUpdate(ctx context.Context, resourceGroup, server, rule string, parameters armsql.FirewallRule) error {
	_, err := c.inner.CreateOrUpdate(ctx, resourceGroup, server, rule, parameters, nil)
	return err
}

type workspacesClient struct {
	inner *armsynapse.WorkspacesClient
}

var _ WorkspacesAPI = (*workspacesClient)(nil)

func (c *workspacesClient) Get(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error) {
	resp, err := c.inner.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return armsynapse.Workspace{}, err
	}
	return resp.Workspace, nil
}

func (c *workspacesClient) CreateOrUpdate(ctx context.Context, resourceGroup, name string, workspace armsynapse.Workspace) (armsynapse.Workspace, error) {
	poller, err := c.inner.BeginCreateOrUpdate(ctx, resourceGroup, name, workspace, nil)
	if err != nil {
		return armsynapse.Workspace{}, err
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsynapse.Workspace{}, err
	}
	return resp.Workspace, nil
}

func (c *workspacesClient) Update(ctx context.Context, resourceGroup, name string, patch armsynapse.WorkspacePatchInfo) error {
	poller, err := c.inner.BeginUpdate(ctx, resourceGroup, name, patch, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

type workspaceFirewallClient struct {
	inner *armsynapse.IPFirewallRulesClient
}

var _ WorkspaceFirewallAPI = (*workspaceFirewallClient)(nil)

func (c *workspaceFirewallClient) CreateOrUpdate(ctx context.Context, resourceGroup, workspace, rule string, info armsynapse.IPFirewallRuleInfo) error {
	poller, err := c.inner.BeginCreateOrUpdate(ctx, resourceGroup, workspace, rule, info, nil)
	if err != nil {
		return err
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return err
}

type roleAssignmentsClient struct {
	inner *armauthorization.RoleAssignmentsClient
}

var _ RoleAssignmentsAPI = (*roleAssignmentsClient)(nil)

func (c *roleAssignmentsClient) ListForScope(ctx context.Context, scope, filter string) ([]*armauthorization.RoleAssignment, error) {
	var assignments []*armauthorization.RoleAssignment
	options := &armauthorization.RoleAssignmentsClientListForScopeOptions{}
	if filter != "" {
		options.Filter = &filter
	}
	pager := c.inner.NewListForScopePager(scope, options)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, page.Value...)
	}
	return assignments, nil
}

func (c *roleAssignmentsClient) Create(ctx context.Context, scope, name string, parameters armauthorization.RoleAssignmentCreateParameters) error {
	_, err := c.inner.Create(ctx, scope, name, parameters, nil)
	return err
}

// linkedServicesClient publishes artifacts through the workspace development
// endpoint, which lives outside the ARM resource-manager surface.
type linkedServicesClient struct {
	cred       azcore.TokenCredential
	httpClient *http.Client
}

var _ LinkedServicesAPI = (*linkedServicesClient)(nil)

func linkedServiceURL(workspace, name string) string {
	return fmt.Sprintf("https://%s.dev.azuresynapse.net/linkedservices/%s?api-version=2020-12-01", workspace, name)
}

func (c *linkedServicesClient) Exists(ctx context.Context, workspace, name string) (bool, error) {
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{devEndpointScope}})
	if err != nil {
		return false, fmt.Errorf("acquiring development endpoint token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, linkedServiceURL(workspace, name), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return false, fmt.Errorf("development endpoint returned %d: %s", resp.StatusCode, body)
	}
	return true, nil
}

func (c *linkedServicesClient) CreateOrUpdate(ctx context.Context, workspace, name string, definition []byte) error {
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{devEndpointScope}})
	if err != nil {
		return fmt.Errorf("acquiring development endpoint token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, linkedServiceURL(workspace, name), bytes.NewReader(definition))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("development endpoint returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
