package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

func (p *Provisioner) ensureResourceGroup(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureResourceGroup")
	defer span.End()

	name := p.cfg.Project.ResourceGroup
	span.SetAttributes(attribute.String("resource_group", name))

	status.Progressf(ctx, "checking resource group %s", name)
	exists, err := p.clients.ResourceGroups.CheckExistence(ctx, name)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("checking resource group %s: %w", name, err)
	}
	if exists {
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("resource group %s already exists", name)).
			WithResource("resource-group").
			WithAction("exists"))
		return nil
	}

	status.Progressf(ctx, "creating resource group %s in %s", name, p.cfg.Project.Region)
	_, err = p.clients.ResourceGroups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(p.cfg.Project.Region),
		Tags: map[string]*string{
			"project":     to.Ptr(p.cfg.Project.Name),
			"environment": to.Ptr(p.cfg.Project.Environment),
		},
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("creating resource group %s: %w", name, err)
	}
	status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("resource group %s created", name)).
		WithResource("resource-group").
		WithAction("created").
		WithMetadata("region", p.cfg.Project.Region))
	return nil
}
