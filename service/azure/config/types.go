package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

type service struct {
	subscriptionID string
	credential     azcore.TokenCredential
	kind           string
}

// ConfigService hands out the application's own credential. It is used by the
// CLI and MCP entry points, which run without a browser session.
type ConfigService interface {
	GetCredential() azcore.TokenCredential
	GetSubscriptionID() string
	CredentialKind() string
}

// Options selects how the application authenticates on its own behalf
type Options struct {
	SubscriptionID string
	TenantID       string
	ClientID       string
	ClientSecret   string
}

const (
	CredentialKindClientSecret = "client_secret"
	CredentialKindDefault      = "default"
)
