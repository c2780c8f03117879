package azureresources

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

func NewService(subscriptionID string, credential azcore.TokenCredential, logger zerolog.Logger) (*service, error) {
	groupsClient, err := armresources.NewResourceGroupsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	client, err := armresources.NewClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}

	return NewServiceWithAPI(subscriptionID, groupsClient, client, logger), nil
}

func NewServiceWithAPI(subscriptionID string, groupsClient ResourceGroupsAPI, client ResourcesAPI, logger zerolog.Logger) *service {
	return &service{
		subscriptionID: subscriptionID,
		groupsClient:   groupsClient,
		client:         client,
		logger:         logger.With().Str("subscription_id", subscriptionID).Logger(),
	}
}

// ListResourceGroups returns every resource group in the subscription
func (s *service) ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error) {
	groups := []model.ResourceGroup{}

	pager := s.groupsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource groups: %w", err)
		}

		for _, group := range page.Value {
			if group == nil || group.Name == nil {
				continue
			}
			groups = append(groups, model.ResourceGroup{
				ID:       deref(group.ID),
				Name:     *group.Name,
				Location: deref(group.Location),
			})
		}
	}

	return groups, nil
}

// ListResources returns every resource in the subscription
func (s *service) ListResources(ctx context.Context) ([]model.Resource, error) {
	resources := []model.Resource{}

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}
		resources = s.appendResources(resources, page.Value)
	}

	return resources, nil
}

// ListResourcesInGroup returns the resources of a single resource group
func (s *service) ListResourcesInGroup(ctx context.Context, resourceGroup string) ([]model.Resource, error) {
	resources := []model.Resource{}

	pager := s.client.NewListByResourceGroupPager(resourceGroup, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources in %s: %w", resourceGroup, err)
		}
		resources = s.appendResources(resources, page.Value)
	}

	return resources, nil
}

func (s *service) appendResources(resources []model.Resource, page []*armresources.GenericResourceExpanded) []model.Resource {
	for _, res := range page {
		if res == nil || res.ID == nil {
			continue
		}

		group := model.UnknownResourceGroup
		if id, err := utils.ParseResourceID(*res.ID); err != nil {
			s.logger.Warn().Err(err).Msg("could not parse resource ID")
		} else if id.ResourceGroup != "" {
			group = id.ResourceGroup
		}

		resources = append(resources, model.Resource{
			ID:            *res.ID,
			Name:          deref(res.Name),
			Type:          deref(res.Type),
			Location:      deref(res.Location),
			ResourceGroup: group,
		})
	}
	return resources
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
