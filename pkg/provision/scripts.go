package provision

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// runInitScripts seeds the workspace's serverless SQL endpoint with the
// configured scripts. Each script fails independently; a broken script is
// reported and the rest still run.
func (p *Provisioner) runInitScripts(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "runInitScripts")
	defer span.End()
	span.SetAttributes(attribute.Int("scripts.count", len(p.cfg.Scripts)))

	if len(p.cfg.Scripts) == 0 {
		status.Info(ctx, "no initialization scripts configured, skipping")
		return nil
	}

	tool, err := p.lookPath("sqlcmd")
	if err != nil {
		status.Warning(ctx, "sqlcmd not found on PATH, skipping initialization scripts")
		return nil
	}

	endpoint := fmt.Sprintf("%s-ondemand.sql.azuresynapse.net", p.cfg.Workspace.Name)
	for _, script := range p.cfg.Scripts {
		exists, err := afero.Exists(p.fs, script)
		if err != nil || !exists {
			status.Warningf(ctx, "script %s not found, skipping", script)
			continue
		}
		status.Progressf(ctx, "running %s against %s", script, endpoint)
		err = p.runCommand(ctx, tool,
			"-S", endpoint,
			"-d", "master",
			"-U", p.cfg.Database.AdminLogin,
			"-P", p.cfg.Database.AdminPassword,
			"-b",
			"-i", script,
		)
		if err != nil {
			status.Warningf(ctx, "script %s failed: %v", script, err)
			continue
		}
		status.Successf(ctx, "script %s complete", script)
	}
	return nil
}

// runCommand executes a local tool, discarding stdout. Tool output is not
// structured and would garble the status stream.
func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, truncateOutput(out))
	}
	return nil
}

func truncateOutput(out []byte) string {
	const limit = 512
	if len(out) > limit {
		return string(out[len(out)-limit:])
	}
	return string(out)
}
