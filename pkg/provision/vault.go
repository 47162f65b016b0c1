package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

func (p *Provisioner) vaultURI() string {
	return fmt.Sprintf("https://%s.vault.azure.net/", p.cfg.Vault.Name)
}

func (p *Provisioner) ensureVault(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureVault")
	defer span.End()

	name := p.cfg.Vault.Name
	span.SetAttributes(attribute.String("vault.name", name))

	status.Progressf(ctx, "checking key vault %s", name)
	_, err := p.clients.Vaults.Get(ctx, p.cfg.Project.ResourceGroup, name)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("key vault %s already exists", name)).
			WithResource("key-vault").
			WithAction("exists"))
	case isNotFound(err):
		status.Progressf(ctx, "creating key vault %s", name)
		_, err = p.clients.Vaults.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, name, armkeyvault.VaultCreateOrUpdateParameters{
			Location: to.Ptr(p.cfg.Project.Region),
			Properties: &armkeyvault.VaultProperties{
				TenantID: to.Ptr(p.cfg.Identity.TenantID),
				SKU: &armkeyvault.SKU{
					Family: to.Ptr(armkeyvault.SKUFamilyA),
					Name:   to.Ptr(armkeyvault.SKUNameStandard),
				},
				EnableRbacAuthorization: to.Ptr(true),
			},
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating key vault %s: %w", name, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("key vault %s created", name)).
			WithResource("key-vault").
			WithAction("created"))
	default:
		span.RecordError(err)
		return fmt.Errorf("checking key vault %s: %w", name, err)
	}

	// The signed-in identity manages secrets in later steps either way, so
	// the grant runs on every pass, not only on first creation.
	return p.ensureRoleAssignment(ctx, p.vaultScope(), roleKeyVaultAdministrator,
		p.cfg.Identity.PrincipalID, "key vault administrator")
}
