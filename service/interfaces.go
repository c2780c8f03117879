package service

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// IdentityService lists what the signed-in principal can see
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
}

// CostService provides normalized previous-month cost data for one subscription
type CostService interface {
	GetLastMonthDailyCosts(ctx context.Context) ([]model.DailyCost, error)
	GetLastMonthCostsByResourceGroup(ctx context.Context) ([]model.ResourceGroupCost, error)
	GetLastMonthSummary(ctx context.Context) (*model.CostSummary, error)
}

// ResourceService provides the resource inventory of one subscription
type ResourceService interface {
	ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error)
	ListResources(ctx context.Context) ([]model.Resource, error)
}

// IdleResourceService finds resources that keep billing without doing work
type IdleResourceService interface {
	GetIdleResources(ctx context.Context) (*model.IdleResources, error)
}

// Factories build per-request services over a credential. Each HTTP request gets
// services bound to the caller's own session credential.
type Factories struct {
	NewCostService     func(subscriptionID string, credential azcore.TokenCredential) (CostService, error)
	NewIdentityService func(subscriptionID string, credential azcore.TokenCredential) (IdentityService, error)
	NewResourceService func(subscriptionID string, credential azcore.TokenCredential) (ResourceService, error)

	NewIdleResourceService func(subscriptionID string, credential azcore.TokenCredential) (IdleResourceService, error)
}
