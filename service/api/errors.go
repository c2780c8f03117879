package api

import (
	"errors"
	"net/http"

	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
	azurecredential "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/credential"
)

var ErrMissingSubscription = errors.New("subscription_id is required")

// statusForError maps the error taxonomy onto HTTP status codes
func statusForError(err error) int {
	var malformed *azurecostmanagement.MalformedRowError

	switch {
	case errors.Is(err, ErrMissingSubscription):
		return http.StatusBadRequest
	case errors.Is(err, azurecredential.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	case errors.Is(err, azurecostmanagement.ErrUpstreamQuery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
