package azureresources

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// ResourceGroupsAPI is the subset of armresources.ResourceGroupsClient used by the service
type ResourceGroupsAPI interface {
	NewListPager(options *armresources.ResourceGroupsClientListOptions) *runtime.Pager[armresources.ResourceGroupsClientListResponse]
}

// ResourcesAPI is the subset of armresources.Client used by the service
type ResourcesAPI interface {
	NewListPager(options *armresources.ClientListOptions) *runtime.Pager[armresources.ClientListResponse]
	NewListByResourceGroupPager(resourceGroupName string, options *armresources.ClientListByResourceGroupOptions) *runtime.Pager[armresources.ClientListByResourceGroupResponse]
}

type service struct {
	subscriptionID string
	groupsClient   ResourceGroupsAPI
	client         ResourcesAPI
	logger         zerolog.Logger
}

type ResourceService interface {
	ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error)
	ListResources(ctx context.Context) ([]model.Resource, error)
	ListResourcesInGroup(ctx context.Context, resourceGroup string) ([]model.Resource, error)
}
