package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/response"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
	azurecredential "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/credential"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/session"
)

func (s *Server) handleLastMonthCosts(w http.ResponseWriter, r *http.Request) {
	costService, ok := s.costService(w, r)
	if !ok {
		return
	}

	costs, err := costService.GetLastMonthDailyCosts(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.NewDailyCosts(costs))
}

func (s *Server) handleCostsByResourceGroup(w http.ResponseWriter, r *http.Request) {
	costService, ok := s.costService(w, r)
	if !ok {
		return
	}

	costs, err := costService.GetLastMonthCostsByResourceGroup(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.NewResourceGroupCosts(costs))
}

func (s *Server) handleCostSummary(w http.ResponseWriter, r *http.Request) {
	costService, ok := s.costService(w, r)
	if !ok {
		return
	}

	summary, err := costService.GetLastMonthSummary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.ConvertCostSummary(summary))
}

func (s *Server) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityService(w, r)
	if !ok {
		return
	}

	subscriptions, err := identity.ListSubscriptions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.Subscriptions{Subscriptions: subscriptions})
}

func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.identityService(w, r)
	if !ok {
		return
	}

	tenants, err := identity.ListTenants(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.Tenants{Tenants: tenants})
}

func (s *Server) handleResourceGroups(w http.ResponseWriter, r *http.Request) {
	resources, ok := s.resourceService(w, r)
	if !ok {
		return
	}

	groups, err := resources.ListResourceGroups(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.ResourceGroups{ResourceGroups: groups})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	resources, ok := s.resourceService(w, r)
	if !ok {
		return
	}

	list, err := resources.ListResources(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.Resources{Resources: list})
}

func (s *Server) handleIdleResources(w http.ResponseWriter, r *http.Request) {
	subscriptionID, credential, ok := s.subscriptionRequest(w, r)
	if !ok {
		return
	}

	svc, err := s.factories.NewIdleResourceService(subscriptionID, credential)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	idle, err := svc.GetIdleResources(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, response.NewIdleResources(idle))
}

func (s *Server) costService(w http.ResponseWriter, r *http.Request) (service.CostService, bool) {
	subscriptionID, credential, ok := s.subscriptionRequest(w, r)
	if !ok {
		return nil, false
	}

	svc, err := s.factories.NewCostService(subscriptionID, credential)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return svc, true
}

func (s *Server) resourceService(w http.ResponseWriter, r *http.Request) (service.ResourceService, bool) {
	subscriptionID, credential, ok := s.subscriptionRequest(w, r)
	if !ok {
		return nil, false
	}

	svc, err := s.factories.NewResourceService(subscriptionID, credential)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return svc, true
}

func (s *Server) identityService(w http.ResponseWriter, r *http.Request) (service.IdentityService, bool) {
	credential, ok := s.sessionCredential(w, r)
	if !ok {
		return nil, false
	}

	svc, err := s.factories.NewIdentityService(strings.TrimSpace(r.URL.Query().Get("subscription_id")), credential)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return svc, true
}

// subscriptionRequest rejects a missing subscription_id before touching the session
func (s *Server) subscriptionRequest(w http.ResponseWriter, r *http.Request) (string, *azurecredential.SessionCredential, bool) {
	subscriptionID := strings.TrimSpace(r.URL.Query().Get("subscription_id"))
	if subscriptionID == "" {
		s.writeError(w, r, ErrMissingSubscription)
		return "", nil, false
	}

	credential, ok := s.sessionCredential(w, r)
	if !ok {
		return "", nil, false
	}
	return subscriptionID, credential, true
}

// sessionCredential bridges the caller's session to an Azure credential. Requests
// whose session carries no token are rejected here, before any client is built.
func (s *Server) sessionCredential(w http.ResponseWriter, r *http.Request) (*azurecredential.SessionCredential, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok && s.store != nil {
		sess = s.store.Load(r)
	}

	if !hasToken(sess) {
		s.writeError(w, r, azurecredential.ErrUnauthenticated)
		return nil, false
	}
	return azurecredential.NewSessionCredential(sess, s.scopes), true
}

func hasToken(sess *session.Session) bool {
	if sess == nil {
		return false
	}
	if _, ok := sess.AccessToken(); !ok {
		return false
	}
	_, ok := sess.TokenExpires()
	return ok
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)

	logger := hlog.FromRequest(r)
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	response.WriteError(w, status, err.Error())
}
