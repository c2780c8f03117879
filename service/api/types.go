package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

// Authenticator serves the sign-in routes
type Authenticator interface {
	Login(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
}

// Options wire the server to its collaborators
type Options struct {
	Store     *session.Store
	Auth      Authenticator
	Factories service.Factories
	// Scopes are reported by the session credential; the stored token already carries them
	Scopes    []string
	StaticDir string
}

type Server struct {
	store     *session.Store
	auth      Authenticator
	factories service.Factories
	scopes    []string
	staticDir string
	logger    zerolog.Logger
}
