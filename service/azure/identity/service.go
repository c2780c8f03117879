package azureidentity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// ErrNoSubscription is returned by subscription-scoped calls when the service was built without one
var ErrNoSubscription = errors.New("subscription ID is required")

const stateEnabled = string(armsubscriptions.SubscriptionStateEnabled)

// NewService creates the identity service. subscriptionID may be empty when only
// listing subscriptions or tenants.
func NewService(subscriptionID string, credential azcore.TokenCredential, logger zerolog.Logger) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	tenantsClient, err := armsubscriptions.NewTenantsClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenants client: %w", err)
	}

	return NewServiceWithAPI(subscriptionID, client, tenantsClient, logger), nil
}

// NewServiceWithAPI creates the identity service over already constructed clients
func NewServiceWithAPI(subscriptionID string, client SubscriptionsAPI, tenantsClient TenantsAPI, logger zerolog.Logger) *service {
	return &service{
		subscriptionID: subscriptionID,
		client:         client,
		tenantsClient:  tenantsClient,
		logger:         logger,
	}
}

// GetAccountInfo implements service.IdentityService
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	subscription, err := s.GetSubscriptionInfo(ctx)
	if err != nil {
		return nil, err
	}

	displayName := s.subscriptionID
	if subscription.DisplayName != nil {
		displayName = *subscription.DisplayName
	}

	return &model.AccountInfo{
		Provider:    "azure",
		AccountID:   s.subscriptionID,
		AccountName: displayName,
	}, nil
}

// GetSubscriptionInfo returns detailed Azure subscription information
func (s *service) GetSubscriptionInfo(ctx context.Context) (*armsubscriptions.Subscription, error) {
	if s.subscriptionID == "" {
		return nil, ErrNoSubscription
	}

	resp, err := s.client.Get(ctx, s.subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription info: %w", err)
	}

	return &resp.Subscription, nil
}

// ListSubscriptions returns the enabled subscriptions visible to the credential
func (s *service) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	subscriptions := []model.Subscription{}

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}

		for _, sub := range page.Value {
			converted, ok := convertSubscription(sub)
			if !ok {
				continue
			}

			if converted.State != stateEnabled {
				s.logger.Debug().
					Str("subscription_id", converted.SubscriptionID).
					Str("state", converted.State).
					Msg("skipping subscription that is not enabled")
				continue
			}

			subscriptions = append(subscriptions, converted)
		}
	}

	return subscriptions, nil
}

// ListTenants returns the tenants visible to the credential
func (s *service) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	tenants := []model.Tenant{}

	pager := s.tenantsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tenants: %w", err)
		}

		for _, tenant := range page.Value {
			if converted, ok := convertTenant(tenant); ok {
				tenants = append(tenants, converted)
			}
		}
	}

	return tenants, nil
}

func convertSubscription(sub *armsubscriptions.Subscription) (model.Subscription, bool) {
	if sub == nil || sub.SubscriptionID == nil {
		return model.Subscription{}, false
	}

	displayName := *sub.SubscriptionID
	if sub.DisplayName != nil {
		displayName = *sub.DisplayName
	}

	state := "Unknown"
	if sub.State != nil {
		state = string(*sub.State)
	}

	return model.Subscription{
		SubscriptionID: *sub.SubscriptionID,
		DisplayName:    displayName,
		State:          state,
	}, true
}

func convertTenant(tenant *armsubscriptions.TenantIDDescription) (model.Tenant, bool) {
	if tenant == nil || tenant.TenantID == nil {
		return model.Tenant{}, false
	}

	converted := model.Tenant{
		TenantID:    *tenant.TenantID,
		DisplayName: *tenant.TenantID,
	}
	if tenant.DisplayName != nil {
		converted.DisplayName = *tenant.DisplayName
	}
	if tenant.DefaultDomain != nil {
		converted.DefaultDomain = *tenant.DefaultDomain
	}

	return converted, true
}
