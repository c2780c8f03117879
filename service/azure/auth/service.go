package azureauth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/response"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

const logoutURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/logout"

// NewService builds the sign-in service against the Microsoft identity platform for the tenant
func NewService(opts Options, store *session.Store, logger zerolog.Logger) *service {
	cfg := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     microsoft.AzureADEndpoint(opts.TenantID),
		RedirectURL:  opts.RedirectURI,
		Scopes:       append([]string(nil), opts.Scopes...),
	}
	return NewServiceWithConfig(cfg, opts, store, logger)
}

// NewServiceWithConfig uses cfg as is, so its endpoint can point at a test server
func NewServiceWithConfig(cfg *oauth2.Config, opts Options, store *session.Store, logger zerolog.Logger) *service {
	postLogout := opts.PostLogoutRedirectURI
	if postLogout == "" {
		postLogout = siteRoot(opts.RedirectURI)
	}

	return &service{
		oauthConfig:           cfg,
		tenantID:              opts.TenantID,
		postLogoutRedirectURI: postLogout,
		store:                 store,
		logger:                logger,
		now:                   time.Now,
	}
}

// Login starts the authorization-code flow with a fresh state and PKCE verifier
func (s *service) Login(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r, true)

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	sess.Set(session.KeyOAuthState, state)
	sess.Set(session.KeyOAuthVerifier, verifier)

	authURL := s.oauthConfig.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the flow and stores the access token in the session
func (s *service) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		message := providerErr
		if desc := query.Get("error_description"); desc != "" {
			message = fmt.Sprintf("%s: %s", providerErr, desc)
		}
		s.logger.Warn().Str("error", providerErr).Msg("identity provider rejected sign-in")
		response.WriteError(w, http.StatusBadRequest, message)
		return
	}

	sess := s.session(w, r, false)
	if sess == nil {
		response.WriteError(w, http.StatusBadRequest, ErrStateMismatch.Error())
		return
	}

	if err := s.completeSignIn(r, sess); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, ErrStateMismatch) || errors.Is(err, ErrMissingCode) {
			status = http.StatusBadRequest
		}
		s.logger.Error().Err(err).Msg("sign-in failed")
		response.WriteError(w, status, err.Error())
		return
	}

	// The signed-in session gets a new ID so a pre-login cookie cannot reach the token
	s.store.Renew(w, sess)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *service) completeSignIn(r *http.Request, sess *session.Session) error {
	query := r.URL.Query()

	expectedState, _ := sess.GetString(session.KeyOAuthState)
	verifier, _ := sess.GetString(session.KeyOAuthVerifier)
	sess.Delete(session.KeyOAuthState)
	sess.Delete(session.KeyOAuthVerifier)

	if expectedState == "" || query.Get("state") != expectedState {
		return ErrStateMismatch
	}

	code := query.Get("code")
	if code == "" {
		return ErrMissingCode
	}

	token, err := s.oauthConfig.Exchange(r.Context(), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return ErrNoAccessToken
	}

	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = s.now().Add(time.Hour)
	}

	sess.Set(session.KeyAccessToken, token.AccessToken)
	sess.Set(session.KeyTokenExpires, expiry.Unix())

	name := userNameFromIDToken(idToken(token))
	if name != "" {
		sess.Set(session.KeyUserName, name)
	}

	s.logger.Info().Str("user", name).Time("expires", expiry).Msg("user signed in")
	return nil
}

// Logout clears the session and signs the user out of the identity platform
func (s *service) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Clear()
	}
	s.store.Destroy(w, r)
	http.Redirect(w, r, s.LogoutURL(), http.StatusFound)
}

// LogoutURL is the identity platform sign-out URL that returns to the site root
func (s *service) LogoutURL() string {
	return fmt.Sprintf(logoutURLFormat, url.PathEscape(s.tenantID)) +
		"?post_logout_redirect_uri=" + url.QueryEscape(s.postLogoutRedirectURI)
}

// Status reports whether the current session holds an unexpired access token
func (s *service) Status(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r, false)
	if !s.IsAuthenticated(sess) {
		response.WriteJSON(w, http.StatusOK, response.NewAuthStatus(false, ""))
		return
	}

	name, _ := sess.GetString(session.KeyUserName)
	response.WriteJSON(w, http.StatusOK, response.NewAuthStatus(true, name))
}

func (s *service) IsAuthenticated(sess *session.Session) bool {
	if sess == nil {
		return false
	}
	if _, ok := sess.AccessToken(); !ok {
		return false
	}
	expires, ok := sess.TokenExpires()
	if !ok {
		return false
	}
	return s.now().Unix() < expires
}

// session prefers the session attached by the store middleware
func (s *service) session(w http.ResponseWriter, r *http.Request, create bool) *session.Session {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess
	}
	if create {
		return s.store.Start(w, r)
	}
	return s.store.Load(r)
}

func idToken(token *oauth2.Token) string {
	if token == nil {
		return ""
	}
	if s, ok := token.Extra("id_token").(string); ok {
		return s
	}
	return ""
}

// userNameFromIDToken reads the display name claim. The token arrived over the
// back channel from the token endpoint, so its signature is not checked here.
func userNameFromIDToken(raw string) string {
	if raw == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}

	for _, key := range []string{"name", "preferred_username", "email"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func siteRoot(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "/"
	}
	return u.Scheme + "://" + u.Host + "/"
}
