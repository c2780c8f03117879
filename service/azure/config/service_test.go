package azureconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_ClientSecretTriple(t *testing.T) {
	svc, err := NewService(Options{
		SubscriptionID: "sub1",
		TenantID:       "00000000-0000-0000-0000-000000000001",
		ClientID:       "00000000-0000-0000-0000-000000000002",
		ClientSecret:   "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, CredentialKindClientSecret, svc.CredentialKind())
	assert.Equal(t, "sub1", svc.GetSubscriptionID())
	assert.NotNil(t, svc.GetCredential())
}

func TestNewService_PartialTripleFallsBackToDefault(t *testing.T) {
	svc, err := NewService(Options{SubscriptionID: "sub1", ClientID: "only-client"})
	require.NoError(t, err)
	assert.Equal(t, CredentialKindDefault, svc.CredentialKind())
}
