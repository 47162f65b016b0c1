package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestImportDatabase(t *testing.T) {
	tests := []struct {
		name        string
		importFile  string
		fileExists  bool
		toolPresent bool
		wantRun     bool
		wantErr     bool
	}{
		{
			name: "no import configured",
		},
		{
			name:        "happy path",
			importFile:  "export.bacpac",
			fileExists:  true,
			toolPresent: true,
			wantRun:     true,
		},
		{
			name:        "file missing",
			importFile:  "export.bacpac",
			toolPresent: true,
			wantErr:     true,
		},
		{
			name:       "tool missing",
			importFile: "export.bacpac",
			fileExists: true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.fileExists {
				if err := afero.WriteFile(fs, tt.importFile, []byte("bacpac"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg := testConfig()
			cfg.Database.ImportFile = tt.importFile

			ran := false
			p := New(&Clients{SubscriptionID: "sub-1"}, cfg, fs)
			p.lookPath = func(name string) (string, error) {
				if tt.toolPresent {
					return "/usr/bin/" + name, nil
				}
				return "", errors.New("not found")
			}
			p.runCommand = func(ctx context.Context, name string, args ...string) error {
				ran = true
				return nil
			}

			err := p.importDatabase(context.Background())
			if tt.wantErr && err == nil {
				t.Fatal("importDatabase() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("importDatabase() error = %v", err)
			}
			if ran != tt.wantRun {
				t.Errorf("import ran = %v, want %v", ran, tt.wantRun)
			}
		})
	}
}

func TestImportDatabasePropagatesToolFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "export.bacpac", []byte("bacpac"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Database.ImportFile = "export.bacpac"

	p := New(&Clients{SubscriptionID: "sub-1"}, cfg, fs)
	p.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	p.runCommand = func(ctx context.Context, name string, args ...string) error {
		return errors.New("import failed")
	}

	if err := p.importDatabase(context.Background()); err == nil {
		t.Fatal("importDatabase() error = nil, want tool failure surfaced for the driver to warn on")
	}
}
