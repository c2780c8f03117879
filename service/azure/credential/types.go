package azurecredential

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// ErrUnauthenticated is returned when the session holds no usable token.
// It is not retryable: the user has to sign in again.
var ErrUnauthenticated = errors.New("user is not authenticated")

// TokenState is the read side of a web session holding delegated OAuth tokens
type TokenState interface {
	AccessToken() (string, bool)
	TokenExpires() (int64, bool)
}

// SessionCredential exposes a session's stored token as an azcore.TokenCredential
// so any ARM client can call Azure on behalf of the signed-in user.
type SessionCredential struct {
	state  TokenState
	scopes []string
}

var _ azcore.TokenCredential = (*SessionCredential)(nil)
