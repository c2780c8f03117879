package azureauth

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

var (
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrMissingCode   = errors.New("authorization code missing from callback")
	ErrNoAccessToken = errors.New("token response carried no access token")
)

// Options describe the app registration used for the authorization-code flow
type Options struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	// PostLogoutRedirectURI defaults to the root of RedirectURI
	PostLogoutRedirectURI string
}

type service struct {
	oauthConfig           *oauth2.Config
	tenantID              string
	postLogoutRedirectURI string
	store                 *session.Store
	logger                zerolog.Logger
	now                   func() time.Time
}

// AuthService serves the sign-in routes and reports whether a session holds a usable token
type AuthService interface {
	Login(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	IsAuthenticated(sess *session.Session) bool
}
