package collect

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// armScope is the token audience used to resolve the caller's identity claims.
const armScope = "https://management.azure.com/.default"

// Session holds the deployment identity derived from the ambient
// authenticated session. It is passed into the collector explicitly so tests
// can substitute a fixed value instead of reading global login state.
type Session struct {
	TenantID         string
	SubscriptionID   string
	SubscriptionName string

	// PrincipalID is the object id of the signed-in identity. It may be
	// empty when the claim cannot be resolved; the provisioner fails fast
	// on an empty value before any resource creation.
	PrincipalID string
}

// SessionResolver resolves the ambient session used for collector defaults.
type SessionResolver interface {
	Resolve(ctx context.Context) (Session, error)
}

// AzureResolver resolves the session from the default Azure credential chain
// (environment variables, workload identity, managed identity, Azure CLI).
type AzureResolver struct {
	cred azcore.TokenCredential
}

// NewAzureResolver builds a resolver on the default credential chain.
func NewAzureResolver() (*AzureResolver, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Azure credential: %w", err)
	}
	return &AzureResolver{cred: cred}, nil
}

// Resolve queries the control plane for the first enabled subscription and
// decodes the caller's identity claims from the ARM access token. A missing
// principal claim is not an error: the session is returned with an empty
// PrincipalID and the failure is deferred to the provisioner.
func (r *AzureResolver) Resolve(ctx context.Context) (Session, error) {
	tracer := otel.Tracer("datum-platform-core")
	ctx, span := tracer.Start(ctx, "collect.Resolve")
	defer span.End()

	var session Session

	token, err := r.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}})
	if err != nil {
		span.RecordError(err)
		return session, fmt.Errorf("failed to acquire control-plane token: %w", err)
	}

	if claims, err := parseTokenClaims(token.Token); err == nil {
		session.PrincipalID = claims.ObjectID
		session.TenantID = claims.TenantID
	}

	client, err := armsubscriptions.NewClient(r.cred, nil)
	if err != nil {
		span.RecordError(err)
		return session, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			return session, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		for _, sub := range page.Value {
			if sub.State != nil && *sub.State != armsubscriptions.SubscriptionStateEnabled {
				continue
			}
			if sub.SubscriptionID != nil {
				session.SubscriptionID = *sub.SubscriptionID
			}
			if sub.DisplayName != nil {
				session.SubscriptionName = *sub.DisplayName
			}
			if session.TenantID == "" && sub.TenantID != nil {
				session.TenantID = *sub.TenantID
			}
			span.SetAttributes(
				attribute.String("subscription_id", session.SubscriptionID),
				attribute.Bool("principal_resolved", session.PrincipalID != ""),
			)
			return session, nil
		}
	}

	return session, fmt.Errorf("no enabled subscription visible to the signed-in identity")
}

// tokenClaims is the subset of ARM token claims the collector cares about.
type tokenClaims struct {
	ObjectID string `json:"oid"`
	TenantID string `json:"tid"`
}

// parseTokenClaims decodes the payload segment of a JWT without verifying
// the signature. The token was just issued to us; only the claims matter.
func parseTokenClaims(token string) (tokenClaims, error) {
	var claims tokenClaims

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return claims, fmt.Errorf("token is not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return claims, fmt.Errorf("failed to decode token payload: %w", err)
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, fmt.Errorf("failed to parse token claims: %w", err)
	}

	return claims, nil
}
