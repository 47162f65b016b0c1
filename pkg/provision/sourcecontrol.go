package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"go.opentelemetry.io/otel"

	"github.com/datum-dev/datum-platform-core/pkg/config"
	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// linkSourceControl attaches the workspace to the configured repository.
// The linkage is a single patch call; if it fails the workspace keeps
// working and the linkage can be completed by hand in the workspace UI.
func (p *Provisioner) linkSourceControl(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "linkSourceControl")
	defer span.End()

	sc := p.cfg.SourceControl
	if sc == nil {
		status.Info(ctx, "source control not configured, skipping")
		return nil
	}
	if !config.IsValidSourceControlKind(sc.Kind) {
		status.Warningf(ctx, "unrecognized source control kind %q, skipping", sc.Kind)
		return nil
	}

	name := p.cfg.Workspace.Name
	_, err := p.clients.Workspaces.Get(ctx, p.cfg.Project.ResourceGroup, name)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("workspace %s does not exist, link the repository manually once it does", name)
		}
		span.RecordError(err)
		return fmt.Errorf("checking workspace %s: %w", name, err)
	}

	repoConfig := &armsynapse.WorkspaceRepositoryConfiguration{
		AccountName:         to.Ptr(sc.Account),
		RepositoryName:      to.Ptr(sc.Repository),
		CollaborationBranch: to.Ptr(sc.Branch),
		RootFolder:          to.Ptr(sc.RootFolder),
	}
	switch sc.Kind {
	case "github":
		repoConfig.Type = to.Ptr("WorkspaceGitHubConfiguration")
		repoConfig.HostName = to.Ptr("https://github.com")
	case "devops":
		repoConfig.Type = to.Ptr("WorkspaceVSTSConfiguration")
		repoConfig.HostName = to.Ptr("https://dev.azure.com")
		repoConfig.ProjectName = to.Ptr(sc.Repository)
	}

	status.Progressf(ctx, "linking workspace %s to %s/%s", name, sc.Account, sc.Repository)
	err = p.clients.Workspaces.Update(ctx, p.cfg.Project.ResourceGroup, name, armsynapse.WorkspacePatchInfo{
		Properties: &armsynapse.WorkspacePatchProperties{
			WorkspaceRepositoryConfiguration: repoConfig,
		},
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("linking workspace %s to source control, complete the linkage manually in the workspace settings: %w", name, err)
	}
	status.Successf(ctx, "workspace %s linked to %s/%s", name, sc.Account, sc.Repository)
	return nil
}
