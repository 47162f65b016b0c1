package provision

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"github.com/spf13/afero"
)

func TestRenderLinkedService(t *testing.T) {
	definition, err := renderLinkedService("vault-linked-service", "kv-analytics-dev")
	if err != nil {
		t.Fatalf("renderLinkedService() error = %v", err)
	}

	var doc struct {
		Name       string `json:"name"`
		Properties struct {
			Type           string `json:"type"`
			TypeProperties struct {
				BaseURL string `json:"baseUrl"`
			} `json:"typeProperties"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(definition, &doc); err != nil {
		t.Fatalf("rendered definition is not valid JSON: %v", err)
	}
	if doc.Name != "vault-linked-service" {
		t.Errorf("name = %s, want vault-linked-service", doc.Name)
	}
	if doc.Properties.Type != "AzureKeyVault" {
		t.Errorf("type = %s, want AzureKeyVault", doc.Properties.Type)
	}
	if doc.Properties.TypeProperties.BaseURL != "https://kv-analytics-dev.vault.azure.net/" {
		t.Errorf("baseUrl = %s, want the vault URI", doc.Properties.TypeProperties.BaseURL)
	}
}

func TestProvisionLinkedServiceWritesArtifact(t *testing.T) {
	var submitted []byte
	clients := &Clients{
		SubscriptionID: "sub-1",
		Workspaces: &MockWorkspaces{
			GetFunc: func(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error) {
				return armsynapse.Workspace{}, nil
			},
		},
		LinkedServices: &MockLinkedServices{
			ExistsFunc: func(ctx context.Context, workspace, name string) (bool, error) {
				return false, nil
			},
			CreateOrUpdateFunc: func(ctx context.Context, workspace, name string, definition []byte) error {
				submitted = definition
				return nil
			},
		},
	}

	fs := afero.NewMemMapFs()
	p := New(clients, testConfig(), fs)

	if err := p.provisionLinkedService(context.Background()); err != nil {
		t.Fatalf("provisionLinkedService() error = %v", err)
	}
	if submitted == nil {
		t.Fatal("definition was not submitted to the workspace")
	}

	artifact, err := afero.ReadFile(fs, "artifacts/vault-linked-service.json")
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(artifact) != string(submitted) {
		t.Error("artifact on disk differs from the submitted definition")
	}
	if !strings.Contains(string(artifact), "kv-analytics-dev.vault.azure.net") {
		t.Error("artifact does not reference the configured vault")
	}
}

func TestProvisionLinkedServiceSkipsWhenPublished(t *testing.T) {
	clients := &Clients{
		SubscriptionID: "sub-1",
		Workspaces: &MockWorkspaces{
			GetFunc: func(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error) {
				return armsynapse.Workspace{}, nil
			},
		},
		LinkedServices: &MockLinkedServices{
			ExistsFunc: func(ctx context.Context, workspace, name string) (bool, error) {
				return true, nil
			},
			CreateOrUpdateFunc: func(ctx context.Context, workspace, name string, definition []byte) error {
				t.Error("CreateOrUpdate called for an already published linked service")
				return nil
			},
		},
	}

	fs := afero.NewMemMapFs()
	p := New(clients, testConfig(), fs)
	if err := p.provisionLinkedService(context.Background()); err != nil {
		t.Fatalf("provisionLinkedService() error = %v, want nil no-op", err)
	}

	if exists, _ := afero.Exists(fs, "artifacts/vault-linked-service.json"); exists {
		t.Error("artifact written although nothing was published")
	}
}

func TestProvisionLinkedServiceSkipsWithoutWorkspace(t *testing.T) {
	clients := &Clients{
		SubscriptionID: "sub-1",
		Workspaces: &MockWorkspaces{
			GetFunc: func(ctx context.Context, resourceGroup, name string) (armsynapse.Workspace, error) {
				return armsynapse.Workspace{}, notFoundErr()
			},
		},
		LinkedServices: &MockLinkedServices{
			CreateOrUpdateFunc: func(ctx context.Context, workspace, name string, definition []byte) error {
				t.Error("CreateOrUpdate called without a workspace")
				return nil
			},
		},
	}

	p := New(clients, testConfig(), afero.NewMemMapFs())
	if err := p.provisionLinkedService(context.Background()); err != nil {
		t.Fatalf("provisionLinkedService() error = %v, want nil no-op", err)
	}
}
