package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Keys under which the OAuth callback stores delegated credential state
const (
	KeyAccessToken   = "access_token"
	KeyTokenExpires  = "token_expires"
	KeyUserName      = "user_name"
	KeyOAuthState    = "oauth_state"
	KeyOAuthVerifier = "oauth_verifier"
)

// DefaultCookieName is the cookie carrying the signed session ID
const DefaultCookieName = "dashboard_session"

// Session is the server-side state of one browser session.
// Values are never sent to the client; only the signed ID travels in the cookie.
type Session struct {
	id        string
	createdAt time.Time
	expiresAt time.Time

	mu     sync.RWMutex
	values map[string]any
}

// Store keeps sessions in memory for the lifetime of the process
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool

	logger      zerolog.Logger
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// Options configures a Store
type Options struct {
	// Secret signs session cookies. Required.
	Secret []byte
	// TTL is the absolute lifetime of a session (0 = 8h).
	TTL time.Duration
	// Secure marks the cookie as HTTPS-only.
	Secure bool
	// CookieName overrides DefaultCookieName.
	CookieName string
	// CleanupInterval is how often expired sessions are swept (0 = 1m, <0 disables).
	CleanupInterval time.Duration
}
