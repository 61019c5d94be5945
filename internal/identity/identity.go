package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	ctrl "sigs.k8s.io/controller-runtime"
)

const (
	managementScope = "https://management.azure.com/.default"
	tokenFilePath   = "/var/run/secrets/azure/tokens/azure-identity-token"
)

// NewManagementCredential returns a workload identity credential for the Azure management plane.
// A token is requested up front so a misconfigured identity fails here rather than halfway through a deployment.
func NewManagementCredential(ctx context.Context, clientID string, tenantID string) (azcore.TokenCredential, error) {
	logger := ctrl.Log.WithName("identity")

	cred, err := azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
		ClientID:      clientID,
		TenantID:      tenantID,
		TokenFilePath: tokenFilePath,
	})
	if err != nil {
		logger.Error(err, "❌ Failed to create workload identity credential")
		return nil, fmt.Errorf("creating workload identity credential: %w", err)
	}

	token, err := cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{managementScope},
	})
	if err != nil {
		logger.Error(err, "❌ Failed to get Azure access token")
		return nil, fmt.Errorf("getting management token: %w", err)
	}

	logger.Info("✅ Successfully acquired Azure token", "expires", token.ExpiresOn.Format(time.RFC3339))
	return cred, nil
}
