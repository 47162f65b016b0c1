package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

func (p *Provisioner) ensureStorage(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureStorage")
	defer span.End()

	account := p.cfg.Storage.AccountName
	span.SetAttributes(attribute.String("storage.account", account))

	status.Progressf(ctx, "checking storage account %s", account)
	_, err := p.clients.StorageAccounts.GetProperties(ctx, p.cfg.Project.ResourceGroup, account)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("storage account %s already exists", account)).
			WithResource("storage-account").
			WithAction("exists"))
	case isNotFound(err):
		status.Progressf(ctx, "creating storage account %s", account)
		_, err = p.clients.StorageAccounts.Create(ctx, p.cfg.Project.ResourceGroup, account, armstorage.AccountCreateParameters{
			Location: to.Ptr(p.cfg.Project.Region),
			Kind:     to.Ptr(armstorage.KindStorageV2),
			SKU: &armstorage.SKU{
				Name: to.Ptr(armstorage.SKUName(p.cfg.Storage.SKU)),
			},
			Properties: &armstorage.AccountPropertiesCreateParameters{
				// Hierarchical namespace cannot be enabled after creation.
				IsHnsEnabled:          to.Ptr(true),
				AllowBlobPublicAccess: to.Ptr(false),
				MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
			},
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating storage account %s: %w", account, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("storage account %s created", account)).
			WithResource("storage-account").
			WithAction("created").
			WithMetadata("sku", p.cfg.Storage.SKU))
	default:
		span.RecordError(err)
		return fmt.Errorf("checking storage account %s: %w", account, err)
	}

	if err := p.ensureFilesystem(ctx); err != nil {
		return err
	}

	return p.ensureRoleAssignment(ctx, p.storageScope(), roleStorageBlobDataContrib,
		p.cfg.Identity.PrincipalID, "storage blob data contributor")
}

func (p *Provisioner) ensureFilesystem(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureFilesystem")
	defer span.End()

	account := p.cfg.Storage.AccountName
	filesystem := p.cfg.Storage.Filesystem

	_, err := p.clients.BlobContainers.Get(ctx, p.cfg.Project.ResourceGroup, account, filesystem)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("filesystem %s already exists", filesystem)).
			WithResource("filesystem").
			WithAction("exists"))
		return nil
	case isNotFound(err):
		status.Progressf(ctx, "creating filesystem %s", filesystem)
		_, err = p.clients.BlobContainers.Create(ctx, p.cfg.Project.ResourceGroup, account, filesystem, armstorage.BlobContainer{
			ContainerProperties: &armstorage.ContainerProperties{
				PublicAccess: to.Ptr(armstorage.PublicAccessNone),
			},
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating filesystem %s: %w", filesystem, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("filesystem %s created", filesystem)).
			WithResource("filesystem").
			WithAction("created"))
		return nil
	default:
		span.RecordError(err)
		return fmt.Errorf("checking filesystem %s: %w", filesystem, err)
	}
}
