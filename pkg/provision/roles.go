package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// Built-in role definition ids. These are stable, documented platform GUIDs.
const (
	roleKeyVaultAdministrator  = "00482a5a-887f-4fb3-b363-3b7fe8e74483"
	roleKeyVaultSecretsUser    = "4633458b-17de-408a-b874-0445c86b69e6"
	roleStorageBlobDataContrib = "ba92f5b4-2d11-453d-a403-e96b0029c9fe"
	roleContributor            = "b24988ac-6180-42a0-ab88-20f7382dd24c"
)

func (p *Provisioner) resourceGroupScope() string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s",
		p.clients.SubscriptionID, p.cfg.Project.ResourceGroup)
}

func (p *Provisioner) vaultScope() string {
	return p.resourceGroupScope() + "/providers/Microsoft.KeyVault/vaults/" + p.cfg.Vault.Name
}

func (p *Provisioner) storageScope() string {
	return p.resourceGroupScope() + "/providers/Microsoft.Storage/storageAccounts/" + p.cfg.Storage.AccountName
}

func (p *Provisioner) workspaceScope() string {
	return p.resourceGroupScope() + "/providers/Microsoft.Synapse/workspaces/" + p.cfg.Workspace.Name
}

func (p *Provisioner) roleDefinitionID(roleID string) string {
	return fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		p.clients.SubscriptionID, roleID)
}

// ensureRoleAssignment grants the role to the principal at the scope unless
// an equivalent assignment already exists. The assignment name is derived
// deterministically from scope, role and principal so that retries after a
// partial failure land on the same assignment instead of piling up new ones.
func (p *Provisioner) ensureRoleAssignment(ctx context.Context, scope, roleID, principalID, description string) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureRoleAssignment")
	defer span.End()
	span.SetAttributes(
		attribute.String("scope", scope),
		attribute.String("role.id", roleID),
	)

	filter := fmt.Sprintf("assignedTo('%s')", principalID)
	existing, err := p.clients.RoleAssignments.ListForScope(ctx, scope, filter)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("listing role assignments at %s: %w", scope, err)
	}
	for _, assignment := range existing {
		if assignment == nil || assignment.Properties == nil || assignment.Properties.RoleDefinitionID == nil {
			continue
		}
		if strings.HasSuffix(*assignment.Properties.RoleDefinitionID, roleID) {
			status.Infof(ctx, "%s role already assigned", description)
			return nil
		}
	}

	name := uuid.NewSHA1(uuid.NameSpaceURL, []byte(scope+roleID+principalID)).String()
	status.Progressf(ctx, "assigning %s role", description)
	err = p.clients.RoleAssignments.Create(ctx, scope, name, armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(principalID),
			RoleDefinitionID: to.Ptr(p.roleDefinitionID(roleID)),
		},
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("assigning %s role: %w", description, err)
	}
	return nil
}
