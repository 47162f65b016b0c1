package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

func (p *Provisioner) ensureWorkspace(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureWorkspace")
	defer span.End()

	name := p.cfg.Workspace.Name
	span.SetAttributes(attribute.String("workspace.name", name))

	status.Progressf(ctx, "checking workspace %s", name)
	_, err := p.clients.Workspaces.Get(ctx, p.cfg.Project.ResourceGroup, name)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("workspace %s already exists", name)).
			WithResource("synapse-workspace").
			WithAction("exists"))
		return nil
	case isNotFound(err):
		properties := &armsynapse.WorkspaceProperties{
			DefaultDataLakeStorage: &armsynapse.DataLakeStorageAccountDetails{
				AccountURL: to.Ptr(fmt.Sprintf("https://%s.dfs.core.windows.net", p.cfg.Storage.AccountName)),
				Filesystem: to.Ptr(p.cfg.Storage.Filesystem),
			},
			SQLAdministratorLogin: to.Ptr(p.cfg.Database.AdminLogin),
		}
		if p.cfg.Database.AdminPassword != "" {
			properties.SQLAdministratorLoginPassword = to.Ptr(p.cfg.Database.AdminPassword)
		}

		status.Progressf(ctx, "creating workspace %s", name)
		_, err = p.clients.Workspaces.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, name, armsynapse.Workspace{
			Location: to.Ptr(p.cfg.Project.Region),
			Identity: &armsynapse.ManagedIdentity{
				Type: to.Ptr(armsynapse.ResourceIdentityTypeSystemAssigned),
			},
			Properties: properties,
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating workspace %s: %w", name, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("workspace %s created", name)).
			WithResource("synapse-workspace").
			WithAction("created"))
		return nil
	default:
		span.RecordError(err)
		return fmt.Errorf("checking workspace %s: %w", name, err)
	}
}

// configureWorkspaceAccess applies the post-conditions that make a workspace
// usable: operator firewall access, an administrative role for the invoking
// identity, and data-plane grants for the workspace's managed identity.
func (p *Provisioner) configureWorkspaceAccess(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "configureWorkspaceAccess")
	defer span.End()

	name := p.cfg.Workspace.Name
	workspace, err := p.clients.Workspaces.Get(ctx, p.cfg.Project.ResourceGroup, name)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("workspace %s does not exist, nothing to configure", name)
		}
		span.RecordError(err)
		return fmt.Errorf("checking workspace %s: %w", name, err)
	}

	if p.clientIP != "" {
		err := p.clients.WorkspaceFirewall.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, name,
			"ClientIPAddress", armsynapse.IPFirewallRuleInfo{
				Properties: &armsynapse.IPFirewallRuleProperties{
					StartIPAddress: to.Ptr(p.clientIP),
					EndIPAddress:   to.Ptr(p.clientIP),
				},
			})
		if err != nil {
			status.Warningf(ctx, "could not open workspace firewall for %s: %v", p.clientIP, err)
		}
	}

	if err := p.ensureRoleAssignment(ctx, p.workspaceScope(), roleContributor,
		p.cfg.Identity.PrincipalID, "workspace contributor"); err != nil {
		return err
	}

	if workspace.Identity == nil || workspace.Identity.PrincipalID == nil || *workspace.Identity.PrincipalID == "" {
		status.Warningf(ctx, "workspace %s has no managed identity principal yet, skipping identity grants", name)
		return nil
	}
	managedIdentity := *workspace.Identity.PrincipalID
	span.SetAttributes(attribute.String("workspace.principal_id", managedIdentity))

	if err := p.ensureRoleAssignment(ctx, p.storageScope(), roleStorageBlobDataContrib,
		managedIdentity, "workspace storage access"); err != nil {
		return err
	}
	if err := p.ensureRoleAssignment(ctx, p.resourceGroupScope(), roleKeyVaultSecretsUser,
		managedIdentity, "workspace secrets access"); err != nil {
		return err
	}

	// Convenience marker for workspace-to-vault wiring, deliberately inert.
	_ = p.clients.Secrets.SetSecret(ctx, p.vaultURI(), name+"-identity", managedIdentity)

	return nil
}
