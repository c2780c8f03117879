package azurecredential

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

type fakeState struct {
	token      string
	hasToken   bool
	expires    int64
	hasExpires bool
	reads      int
}

func (f *fakeState) AccessToken() (string, bool) {
	f.reads++
	return f.token, f.hasToken
}

func (f *fakeState) TokenExpires() (int64, bool) {
	return f.expires, f.hasExpires
}

func TestGetToken_ReturnsStoredValuesUnchanged(t *testing.T) {
	state := &fakeState{token: "eyJ0eXAi.abc", hasToken: true, expires: 1730419200, hasExpires: true}
	cred := NewSessionCredential(state, []string{"https://management.azure.com/.default"})

	tok, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{
		Scopes: []string{"https://management.azure.com/.default"},
	})
	require.NoError(t, err)
	assert.Equal(t, "eyJ0eXAi.abc", tok.Token)
	assert.Equal(t, int64(1730419200), tok.ExpiresOn.Unix())
}

func TestGetToken_IgnoresRequestedScopes(t *testing.T) {
	state := &fakeState{token: "t", hasToken: true, expires: 42, hasExpires: true}
	cred := NewSessionCredential(state, []string{"https://management.azure.com/.default"})

	tok, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{
		Scopes: []string{"https://graph.microsoft.com/.default"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t", tok.Token)
}

func TestGetToken_MissingStateIsUnauthenticated(t *testing.T) {
	tests := []struct {
		name  string
		state TokenState
	}{
		{name: "nil state", state: nil},
		{name: "no token", state: &fakeState{expires: 42, hasExpires: true}},
		{name: "no expiry", state: &fakeState{token: "t", hasToken: true}},
		{name: "nothing", state: &fakeState{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := NewSessionCredential(tt.state, nil)
			tok, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{})
			assert.ErrorIs(t, err, ErrUnauthenticated)
			assert.Empty(t, tok.Token)
		})
	}
}

func TestGetToken_ReadsThroughOnEveryCall(t *testing.T) {
	sess := session.New()
	sess.Set(session.KeyAccessToken, "first")
	sess.Set(session.KeyTokenExpires, int64(100))

	cred := NewSessionCredential(sess, nil)

	tok, err := cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first", tok.Token)

	sess.Set(session.KeyAccessToken, "rotated")
	sess.Set(session.KeyTokenExpires, int64(200))
	tok, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	require.NoError(t, err)
	assert.Equal(t, "rotated", tok.Token)
	assert.Equal(t, int64(200), tok.ExpiresOn.Unix())

	sess.Clear()
	_, err = cred.GetToken(context.Background(), policy.TokenRequestOptions{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestScopes_ReturnsCopy(t *testing.T) {
	scopes := []string{"a"}
	cred := NewSessionCredential(nil, scopes)
	scopes[0] = "mutated"

	got := cred.Scopes()
	assert.Equal(t, []string{"a"}, got)
}
