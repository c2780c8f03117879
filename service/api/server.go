package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/response"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
	azurecompute "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/compute"
	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
	azureidentity "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/identity"
	azureresources "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/resources"
)

func NewServer(opts Options, logger zerolog.Logger) *Server {
	return &Server{
		store:     opts.Store,
		auth:      opts.Auth,
		factories: opts.Factories,
		scopes:    append([]string(nil), opts.Scopes...),
		staticDir: opts.StaticDir,
		logger:    logger,
	}
}

// DefaultFactories builds services on the Azure SDK clients
func DefaultFactories(logger zerolog.Logger) service.Factories {
	return service.Factories{
		NewCostService: func(subscriptionID string, credential azcore.TokenCredential) (service.CostService, error) {
			return azurecostmanagement.NewService(subscriptionID, credential, logger)
		},
		NewIdentityService: func(subscriptionID string, credential azcore.TokenCredential) (service.IdentityService, error) {
			return azureidentity.NewService(subscriptionID, credential, logger)
		},
		NewResourceService: func(subscriptionID string, credential azcore.TokenCredential) (service.ResourceService, error) {
			return azureresources.NewService(subscriptionID, credential, logger)
		},
		NewIdleResourceService: func(subscriptionID string, credential azcore.TokenCredential) (service.IdleResourceService, error) {
			return azurecompute.NewService(subscriptionID, credential, logger)
		},
	}
}

// Handler returns the full route table wrapped in logging and session middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /auth/login", s.auth.Login)
	mux.HandleFunc("GET /auth/callback", s.auth.Callback)
	mux.HandleFunc("GET /auth/logout", s.auth.Logout)
	mux.HandleFunc("GET /api/auth/status", s.auth.Status)

	mux.HandleFunc("GET /api/costs/last-month", s.handleLastMonthCosts)
	mux.HandleFunc("GET /api/costs/by-resource-group", s.handleCostsByResourceGroup)
	mux.HandleFunc("GET /api/costs/summary", s.handleCostSummary)
	mux.HandleFunc("GET /api/subscriptions", s.handleSubscriptions)
	mux.HandleFunc("GET /api/tenants", s.handleTenants)
	mux.HandleFunc("GET /api/resource-groups", s.handleResourceGroups)
	mux.HandleFunc("GET /api/resources", s.handleResources)
	mux.HandleFunc("GET /api/resources/idle", s.handleIdleResources)
	mux.HandleFunc("GET /api/", func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, http.StatusNotFound, "not found")
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Health{Status: "ok"})
	})
	mux.Handle("GET /", s.staticHandler())

	var h http.Handler = mux
	if s.store != nil {
		h = s.store.Middleware(h)
	}
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RequestIDHandler("request_id", "X-Request-Id")(h)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = hlog.NewHandler(s.logger)(h)

	return h
}

// staticHandler serves the single-page frontend, falling back to index.html
func (s *Server) staticHandler() http.Handler {
	files := http.FileServer(http.Dir(s.staticDir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.staticDir == "" {
			http.NotFound(w, r)
			return
		}

		clean := filepath.Clean("/" + r.URL.Path)
		if clean != "/" {
			info, err := os.Stat(filepath.Join(s.staticDir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
			if err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
	})
}
