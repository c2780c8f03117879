package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const sessionKey contextKey = "dashboard_session"

func NewStore(opts Options, logger zerolog.Logger) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	st := &Store{
		sessions:    make(map[string]*Session),
		secret:      opts.Secret,
		ttl:         ttl,
		cookieName:  cookieName,
		secure:      opts.Secure,
		logger:      logger.With().Str("component", "session").Logger(),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	interval := opts.CleanupInterval
	if interval == 0 {
		interval = time.Minute
	}
	if interval > 0 {
		go st.cleanupLoop(interval)
	}

	return st
}

// Load returns the live session referenced by the request cookie, or nil
func (st *Store) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(st.cookieName)
	if err != nil {
		return nil
	}

	id, ok := st.verify(cookie.Value)
	if !ok {
		st.logger.Debug().Msg("rejected session cookie with bad signature")
		return nil
	}

	st.mu.RLock()
	sess, exists := st.sessions[id]
	st.mu.RUnlock()
	if !exists {
		return nil
	}

	if st.now().After(sess.expiresAt) {
		st.remove(id)
		return nil
	}
	return sess
}

// Start returns the request's session, creating one and setting its cookie when needed
func (st *Store) Start(w http.ResponseWriter, r *http.Request) *Session {
	if sess := st.Load(r); sess != nil {
		return sess
	}

	sess := st.create()
	st.setCookie(w, sess)
	return sess
}

// Renew moves old's values to a session with a fresh ID and points the cookie at it.
// Call it when the session gains privileges, such as at sign-in.
func (st *Store) Renew(w http.ResponseWriter, old *Session) *Session {
	sess := st.create()

	old.mu.Lock()
	for k, v := range old.values {
		sess.values[k] = v
	}
	old.values = make(map[string]any)
	old.mu.Unlock()

	st.remove(old.id)
	st.setCookie(w, sess)
	return sess
}

func (st *Store) create() *Session {
	now := st.now()
	sess := &Session{
		id:        uuid.NewString(),
		createdAt: now,
		expiresAt: now.Add(st.ttl),
		values:    make(map[string]any),
	}

	st.mu.Lock()
	st.sessions[sess.id] = sess
	st.mu.Unlock()
	return sess
}

func (st *Store) setCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     st.cookieName,
		Value:    st.sign(sess.id),
		Path:     "/",
		Expires:  sess.expiresAt,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Destroy drops the request's session and expires its cookie
func (st *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	if sess := st.Load(r); sess != nil {
		sess.Clear()
		st.remove(sess.id)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     st.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   st.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware attaches the request's existing session to its context. It never
// creates one; handlers that need a session call Start.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := st.Load(r); sess != nil {
			r = r.WithContext(NewContext(r.Context(), sess))
		}
		next.ServeHTTP(w, r)
	})
}

// Len reports the number of stored sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop stops the background cleanup goroutine
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		close(st.stopCleanup)
	})
}

func (st *Store) remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.cleanup()
		case <-st.stopCleanup:
			return
		}
	}
}

// cleanup removes all expired sessions from the store
func (st *Store) cleanup() {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()

	count := 0
	for id, sess := range st.sessions {
		if now.After(sess.expiresAt) {
			delete(st.sessions, id)
			count++
		}
	}

	if count > 0 {
		st.logger.Debug().Int("removed", count).Msg("cleaned up expired sessions")
	}
}

func (st *Store) sign(id string) string {
	mac := hmac.New(sha256.New, st.secret)
	mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (st *Store) verify(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	expected := st.sign(id)
	if !hmac.Equal([]byte(expected), []byte(id+"."+sig)) {
		return "", false
	}
	return id, true
}

// NewContext returns a copy of ctx carrying sess
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session attached by Middleware
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*Session)
	return sess, ok && sess != nil
}

// New returns a detached session, useful for callers that manage storage themselves
func New() *Session {
	now := time.Now()
	return &Session{
		id:        uuid.NewString(),
		createdAt: now,
		expiresAt: now.Add(24 * time.Hour),
		values:    make(map[string]any),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt64 accepts any integer representation written by callers
func (s *Session) GetInt64(key string) (int64, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Clear drops every value, used on logout
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any)
}

// AccessToken returns the delegated bearer token stored by the OAuth callback
func (s *Session) AccessToken() (string, bool) {
	token, ok := s.GetString(KeyAccessToken)
	return token, ok && token != ""
}

// TokenExpires returns the token's absolute expiry in epoch seconds
func (s *Session) TokenExpires() (int64, bool) {
	return s.GetInt64(KeyTokenExpires)
}
