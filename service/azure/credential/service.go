package azurecredential

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// NewSessionCredential binds a credential to one session. scopes records what the
// token was requested for at sign-in; it is informational only.
func NewSessionCredential(state TokenState, scopes []string) *SessionCredential {
	return &SessionCredential{
		state:  state,
		scopes: append([]string(nil), scopes...),
	}
}

// GetToken implements azcore.TokenCredential.
// It re-reads the session on every call, so logout or a new sign-in is visible
// immediately. The requested scopes are ignored: the session holds a single token
// that already covers the scopes asked for at sign-in.
func (c *SessionCredential) GetToken(_ context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if c.state == nil {
		return azcore.AccessToken{}, ErrUnauthenticated
	}

	token, ok := c.state.AccessToken()
	if !ok {
		return azcore.AccessToken{}, ErrUnauthenticated
	}

	expires, ok := c.state.TokenExpires()
	if !ok {
		return azcore.AccessToken{}, ErrUnauthenticated
	}

	return azcore.AccessToken{
		Token:     token,
		ExpiresOn: time.Unix(expires, 0).UTC(),
	}, nil
}

// Scopes returns the scope list the credential was configured with
func (c *SessionCredential) Scopes() []string {
	return append([]string(nil), c.scopes...)
}
