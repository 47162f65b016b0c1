package provision

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

//go:embed templates/keyvault_linkedservice.json.tmpl
var linkedServiceTemplates embed.FS

const (
	linkedServiceName = "vault-linked-service"
	artifactsDir      = "artifacts"
)

// provisionLinkedService publishes a vault-backed linked service so pipelines
// in the workspace can resolve secrets without embedded credentials. The
// rendered definition is kept under artifacts/ for inspection and reuse.
func (p *Provisioner) provisionLinkedService(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "provisionLinkedService")
	defer span.End()

	name := p.cfg.Workspace.Name
	_, err := p.clients.Workspaces.Get(ctx, p.cfg.Project.ResourceGroup, name)
	if err != nil {
		if isNotFound(err) {
			status.Infof(ctx, "workspace %s does not exist, skipping linked service", name)
			return nil
		}
		span.RecordError(err)
		return fmt.Errorf("checking workspace %s: %w", name, err)
	}

	exists, err := p.clients.LinkedServices.Exists(ctx, name, linkedServiceName)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("checking linked service %s: %w", linkedServiceName, err)
	}
	if exists {
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("linked service %s already published", linkedServiceName)).
			WithResource("linked-service").
			WithAction("exists"))
		return nil
	}

	definition, err := renderLinkedService(linkedServiceName, p.cfg.Vault.Name)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("rendering linked service definition: %w", err)
	}

	artifactPath := filepath.Join(artifactsDir, linkedServiceName+".json")
	if err := p.fs.MkdirAll(artifactsDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", artifactsDir, err)
	}
	if err := afero.WriteFile(p.fs, artifactPath, definition, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", artifactPath, err)
	}

	status.Send(ctx, status.NewUpdate(status.LevelProgress, fmt.Sprintf("publishing linked service %s to workspace %s", linkedServiceName, name)).
		WithResource("linked-service").
		WithAction("publishing"))
	if err := p.clients.LinkedServices.CreateOrUpdate(ctx, name, linkedServiceName, definition); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publishing linked service %s: %w", linkedServiceName, err)
	}
	status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("linked service %s published", linkedServiceName)).
		WithResource("linked-service").
		WithAction("published").
		WithMetadata("artifact", artifactPath))
	return nil
}

func renderLinkedService(name, vaultName string) ([]byte, error) {
	tmpl, err := template.ParseFS(linkedServiceTemplates, "templates/keyvault_linkedservice.json.tmpl")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Name      string
		VaultName string
	}{Name: name, VaultName: vaultName})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
