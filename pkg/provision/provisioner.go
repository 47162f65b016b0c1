package provision

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/config"
	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// A step is one unit of the convergence pipeline. Critical steps abort the
// run on failure; the rest surface a warning and let the pipeline continue,
// since a re-run converges whatever was left behind.
type step struct {
	name     string
	critical bool
	run      func(ctx context.Context) error
}

// Provisioner drives the platform resources in a subscription toward the
// state described by the configuration. Every step checks before it creates,
// so running it against an already-provisioned platform is a no-op.
type Provisioner struct {
	clients *Clients
	cfg     *config.PlatformConfig
	fs      afero.Fs

	// Seams for tests and for machines without the optional local tools.
	lookPath   func(name string) (string, error)
	runCommand func(ctx context.Context, name string, args ...string) error
	resolveIP  func(ctx context.Context) (string, error)

	// Resolved once per run, before the step table executes.
	clientIP string
}

// New returns a Provisioner wired to real local tooling.
func New(clients *Clients, cfg *config.PlatformConfig, fs afero.Fs) *Provisioner {
	return &Provisioner{
		clients:    clients,
		cfg:        cfg,
		fs:         fs,
		lookPath:   exec.LookPath,
		runCommand: runCommand,
		resolveIP:  resolvePublicIP,
	}
}

// Run executes the pipeline. It returns an error only when a critical step
// fails; warnings from the remaining steps are reported through the status
// channel and the run keeps going.
func (p *Provisioner) Run(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "Provisioner.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("subscription.id", p.cfg.Identity.SubscriptionID),
		attribute.String("resource_group", p.cfg.Project.ResourceGroup),
	)

	if p.cfg.Identity.SubscriptionID == "" {
		err := fmt.Errorf("no subscription id resolved, sign in and run init again")
		span.RecordError(err)
		return err
	}
	if p.cfg.Identity.PrincipalID == "" {
		err := fmt.Errorf("no signed-in principal resolved, role assignments would be skipped, sign in and run init again")
		span.RecordError(err)
		return err
	}

	// Best effort. Steps that open firewall rules for the operator simply
	// skip the client rule when the address is unknown.
	if ip, err := p.resolveIP(ctx); err == nil {
		p.clientIP = ip
	}

	steps := []step{
		{name: "resource-group", critical: true, run: p.ensureResourceGroup},
		{name: "key-vault", critical: true, run: p.ensureVault},
		{name: "storage", critical: true, run: p.ensureStorage},
		{name: "sql-server", critical: true, run: p.ensureSQLServer},
		{name: "sql-import", critical: false, run: p.importDatabase},
		{name: "synapse-workspace", critical: true, run: p.ensureWorkspace},
		{name: "workspace-access", critical: false, run: p.configureWorkspaceAccess},
		{name: "source-control", critical: false, run: p.linkSourceControl},
		{name: "linked-service", critical: false, run: p.provisionLinkedService},
		{name: "init-scripts", critical: false, run: p.runInitScripts},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			if s.critical {
				span.RecordError(err)
				status.Send(ctx, status.NewUpdate(status.LevelError, fmt.Sprintf("step %s failed: %v", s.name, err)).
					WithResource(s.name).
					WithAction("failed").
					WithMetadata("error", err.Error()))
				return fmt.Errorf("step %s: %w", s.name, err)
			}
			status.Send(ctx, status.NewUpdate(status.LevelWarning, fmt.Sprintf("step %s skipped: %v, re-run provision to retry", s.name, err)).
				WithResource(s.name).
				WithAction("skipped").
				WithMetadata("error", err.Error()))
		}
	}

	status.Success(ctx, "platform provisioning complete")
	return nil
}
