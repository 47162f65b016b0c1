package provision

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// importDatabase loads a bacpac-style export into the logical database using
// the local sqlpackage tool. Importing into a database that already carries
// data fails on the service side, which surfaces as a warning, not data loss.
func (p *Provisioner) importDatabase(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "importDatabase")
	defer span.End()

	if p.cfg.Database.ImportFile == "" {
		status.Info(ctx, "no import file configured, skipping")
		return nil
	}

	exists, err := afero.Exists(p.fs, p.cfg.Database.ImportFile)
	if err != nil || !exists {
		return fmt.Errorf("import file %s not found", p.cfg.Database.ImportFile)
	}

	tool, err := p.lookPath("sqlpackage")
	if err != nil {
		return fmt.Errorf("sqlpackage not found on PATH, install it and re-run provision")
	}

	status.Progressf(ctx, "importing %s into %s", p.cfg.Database.ImportFile, p.cfg.Database.DatabaseName)
	err = p.runCommand(ctx, tool,
		"/Action:Import",
		"/SourceFile:"+p.cfg.Database.ImportFile,
		fmt.Sprintf("/TargetServerName:%s.database.windows.net", p.cfg.Database.ServerName),
		"/TargetDatabaseName:"+p.cfg.Database.DatabaseName,
		"/TargetUser:"+p.cfg.Database.AdminLogin,
		"/TargetPassword:"+p.cfg.Database.AdminPassword,
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("importing %s: %w", p.cfg.Database.ImportFile, err)
	}
	status.Successf(ctx, "database import of %s complete", p.cfg.Database.ImportFile)
	return nil
}
