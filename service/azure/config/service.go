package azureconfig

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// NewService builds the application credential. A full client-secret triple selects
// a ClientSecretCredential for the app registration; otherwise DefaultAzureCredential
// is used, which supports:
// - Environment variables (AZURE_CLIENT_ID, AZURE_TENANT_ID, AZURE_CLIENT_SECRET)
// - Managed Identity
// - Azure CLI (az login)
func NewService(opts Options) (*service, error) {
	if opts.TenantID != "" && opts.ClientID != "" && opts.ClientSecret != "" {
		credential, err := azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create client secret credential: %w", err)
		}
		return &service{
			subscriptionID: opts.SubscriptionID,
			credential:     credential,
			kind:           CredentialKindClientSecret,
		}, nil
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return &service{
		subscriptionID: opts.SubscriptionID,
		credential:     credential,
		kind:           CredentialKindDefault,
	}, nil
}

func (s *service) GetCredential() azcore.TokenCredential {
	return s.credential
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}

// CredentialKind reports which credential NewService selected
func (s *service) CredentialKind() string {
	return s.kind
}
