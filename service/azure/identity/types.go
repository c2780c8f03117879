package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// SubscriptionsAPI is the subset of armsubscriptions.Client used by the service
type SubscriptionsAPI interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
	NewListPager(options *armsubscriptions.ClientListOptions) *runtime.Pager[armsubscriptions.ClientListResponse]
}

// TenantsAPI is the subset of armsubscriptions.TenantsClient used by the service
type TenantsAPI interface {
	NewListPager(options *armsubscriptions.TenantsClientListOptions) *runtime.Pager[armsubscriptions.TenantsClientListResponse]
}

type service struct {
	subscriptionID string
	client         SubscriptionsAPI
	tenantsClient  TenantsAPI
	logger         zerolog.Logger
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	GetSubscriptionInfo(ctx context.Context) (*armsubscriptions.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)
	ListTenants(ctx context.Context) ([]model.Tenant, error)
}
