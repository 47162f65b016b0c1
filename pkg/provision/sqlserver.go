package provision

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/datum-dev/datum-platform-core/pkg/status"
)

// adminSecretName returns the vault secret that stores the server admin
// password. The name is deterministic so every run and every consumer
// resolves the same secret.
func adminSecretName(serverName string) string {
	return serverName + "-admin-password"
}

func (p *Provisioner) ensureSQLServer(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureSQLServer")
	defer span.End()

	server := p.cfg.Database.ServerName
	span.SetAttributes(attribute.String("sql.server", server))

	status.Progressf(ctx, "checking sql server %s", server)
	_, err := p.clients.SQLServers.Get(ctx, p.cfg.Project.ResourceGroup, server)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("sql server %s already exists", server)).
			WithResource("sql-server").
			WithAction("exists"))
	case isNotFound(err):
		if p.cfg.Database.AdminPassword == "" {
			return fmt.Errorf("sql server %s does not exist and no admin password is set, run init to collect one", server)
		}
		status.Progressf(ctx, "creating sql server %s", server)
		_, err = p.clients.SQLServers.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, server, armsql.Server{
			Location: to.Ptr(p.cfg.Project.Region),
			Properties: &armsql.ServerProperties{
				AdministratorLogin:         to.Ptr(p.cfg.Database.AdminLogin),
				AdministratorLoginPassword: to.Ptr(p.cfg.Database.AdminPassword),
				Version:                    to.Ptr("12.0"),
				MinimalTLSVersion:          to.Ptr("1.2"),
			},
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating sql server %s: %w", server, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("sql server %s created", server)).
			WithResource("sql-server").
			WithAction("created"))

		if err := p.configureServerFirewall(ctx); err != nil {
			return err
		}

		// The vault copy is the durable home of the password; after this
		// write the file copy is never read again.
		if err := p.clients.Secrets.SetSecret(ctx, p.vaultURI(), adminSecretName(server), p.cfg.Database.AdminPassword); err != nil {
			span.RecordError(err)
			return fmt.Errorf("storing admin password for %s: %w", server, err)
		}
		status.Successf(ctx, "admin password stored in vault as %s", adminSecretName(server))
	default:
		span.RecordError(err)
		return fmt.Errorf("checking sql server %s: %w", server, err)
	}

	return p.ensureDatabase(ctx)
}

func (p *Provisioner) configureServerFirewall(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "configureServerFirewall")
	defer span.End()

	server := p.cfg.Database.ServerName

	// 0.0.0.0 on both ends is the service convention for allowing other
	// platform services, not the public internet.
	err := p.clients.SQLFirewallRules.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, server,
		"AllowAllWindowsAzureIps", armsql.FirewallRule{
			Properties: &armsql.ServerFirewallRuleProperties{
				StartIPAddress: to.Ptr("0.0.0.0"),
				EndIPAddress:   to.Ptr("0.0.0.0"),
			},
		})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("opening firewall for platform services on %s: %w", server, err)
	}

	if p.clientIP != "" {
		err := p.clients.SQLFirewallRules.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, server,
			"ClientIPAddress", armsql.FirewallRule{
				Properties: &armsql.ServerFirewallRuleProperties{
					StartIPAddress: to.Ptr(p.clientIP),
					EndIPAddress:   to.Ptr(p.clientIP),
				},
			})
		if err != nil {
			// Convenience rule for the operator machine only.
			status.Warningf(ctx, "could not open sql firewall for %s: %v", p.clientIP, err)
		}
	}
	return nil
}

func (p *Provisioner) ensureDatabase(ctx context.Context) error {
	ctx, span := otel.Tracer("pkg/provision").Start(ctx, "ensureDatabase")
	defer span.End()

	server := p.cfg.Database.ServerName
	database := p.cfg.Database.DatabaseName
	span.SetAttributes(attribute.String("sql.database", database))

	_, err := p.clients.SQLDatabases.Get(ctx, p.cfg.Project.ResourceGroup, server, database)
	switch {
	case err == nil:
		status.Send(ctx, status.NewUpdate(status.LevelInfo, fmt.Sprintf("database %s already exists", database)).
			WithResource("database").
			WithAction("exists"))
		return nil
	case isNotFound(err):
		status.Progressf(ctx, "creating database %s", database)
		_, err = p.clients.SQLDatabases.CreateOrUpdate(ctx, p.cfg.Project.ResourceGroup, server, database, armsql.Database{
			Location: to.Ptr(p.cfg.Project.Region),
		})
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("creating database %s: %w", database, err)
		}
		status.Send(ctx, status.NewUpdate(status.LevelSuccess, fmt.Sprintf("database %s created", database)).
			WithResource("database").
			WithAction("created"))
		return nil
	default:
		span.RecordError(err)
		return fmt.Errorf("checking database %s: %w", database, err)
	}
}
