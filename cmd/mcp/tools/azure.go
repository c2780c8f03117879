package tools

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/response"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
)

// Deps are shared by every tool handler
type Deps struct {
	Credential azcore.TokenCredential
	// SubscriptionID is used when a tool call does not name one
	SubscriptionID string
	Factories      service.Factories
	Logger         zerolog.Logger
}

// RegisterAzureTools registers all Azure tools with the MCP server
func RegisterAzureTools(s *server.MCPServer, deps Deps) {
	subscriptionArg := mcp.WithString("subscription_id",
		mcp.Description("Azure subscription ID. Defaults to AZURE_SUBSCRIPTION_ID."),
	)

	// Works without a subscription ID
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List the enabled Azure subscriptions the credential has access to"),
		),
		makeListSubscriptionsHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_list_tenants",
			mcp.WithDescription("List the Azure AD tenants the credential has access to"),
		),
		makeListTenantsHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get Azure subscription details including ID and display name"),
			subscriptionArg,
		),
		makeSubscriptionInfoHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_get_last_month_costs",
			mcp.WithDescription("Get daily Azure cost totals for the previous calendar month"),
			subscriptionArg,
		),
		makeLastMonthCostsHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_get_costs_by_resource_group",
			mcp.WithDescription("Get daily Azure costs per resource group for the previous calendar month"),
			subscriptionArg,
		),
		makeCostsByResourceGroupHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_summary",
			mcp.WithDescription("Get total and average daily Azure cost for the previous calendar month"),
			subscriptionArg,
		),
		makeCostSummaryHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_list_resource_groups",
			mcp.WithDescription("List the resource groups of an Azure subscription"),
			subscriptionArg,
		),
		makeListResourceGroupsHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_list_resources",
			mcp.WithDescription("List the resources of an Azure subscription with their resource group"),
			subscriptionArg,
		),
		makeListResourcesHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_get_idle_resources",
			mcp.WithDescription("Find Azure resources that keep billing without doing work: unattached disks, deallocated VMs, unassociated public IPs and reservations expiring within 30 days"),
			subscriptionArg,
		),
		makeIdleResourcesHandler(deps),
	)

	s.AddTool(
		mcp.NewTool("azure_normalize_cost_query",
			mcp.WithDescription("Normalize a raw Cost Management query result (JSON with columns and rows) into daily or per-resource-group records"),
			mcp.WithString("query_result",
				mcp.Required(),
				mcp.Description("Query result JSON: {columns, rows} or the full API response"),
			),
			mcp.WithBoolean("by_resource_group",
				mcp.Description("Map rows to {date, resource_group, cost} instead of {UsageDate, Cost}"),
			),
		),
		makeNormalizeHandler(deps),
	)
}

func makeListSubscriptionsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identitySvc, err := deps.Factories.NewIdentityService("", deps.Credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure identity service: %v", err)), nil
		}

		subscriptions, err := identitySvc.ListSubscriptions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
		}

		return jsonResult(response.Subscriptions{Subscriptions: subscriptions})
	}
}

func makeListTenantsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identitySvc, err := deps.Factories.NewIdentityService("", deps.Credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure identity service: %v", err)), nil
		}

		tenants, err := identitySvc.ListTenants(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tenants: %v", err)), nil
		}

		return jsonResult(response.Tenants{Tenants: tenants})
	}
}

func makeSubscriptionInfoHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subscriptionID, errResult := requireSubscription(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		identitySvc, err := deps.Factories.NewIdentityService(subscriptionID, deps.Credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure identity service: %v", err)), nil
		}

		info, err := identitySvc.GetAccountInfo(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeLastMonthCostsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		costSvc, errResult := costService(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		costs, err := costSvc.GetLastMonthDailyCosts(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get last month costs: %v", err)), nil
		}

		return jsonResult(response.NewDailyCosts(costs))
	}
}

func makeCostsByResourceGroupHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		costSvc, errResult := costService(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		costs, err := costSvc.GetLastMonthCostsByResourceGroup(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get costs by resource group: %v", err)), nil
		}

		return jsonResult(response.NewResourceGroupCosts(costs))
	}
}

func makeCostSummaryHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		costSvc, errResult := costService(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		summary, err := costSvc.GetLastMonthSummary(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get cost summary: %v", err)), nil
		}

		return jsonResult(response.ConvertCostSummary(summary))
	}
}

func makeListResourceGroupsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resourceSvc, errResult := resourceService(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		groups, err := resourceSvc.ListResourceGroups(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list resource groups: %v", err)), nil
		}

		return jsonResult(response.ResourceGroups{ResourceGroups: groups})
	}
}

func makeListResourcesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resourceSvc, errResult := resourceService(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		resources, err := resourceSvc.ListResources(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list resources: %v", err)), nil
		}

		return jsonResult(response.Resources{Resources: resources})
	}
}

func makeIdleResourcesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subscriptionID, errResult := requireSubscription(deps, request)
		if errResult != nil {
			return errResult, nil
		}

		idleSvc, err := deps.Factories.NewIdleResourceService(subscriptionID, deps.Credential)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure compute service: %v", err)), nil
		}

		idle, err := idleSvc.GetIdleResources(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan idle resources: %v", err)), nil
		}

		return jsonResult(response.NewIdleResources(idle))
	}
}

func makeNormalizeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("query_result")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := azurecostmanagement.DecodeQueryResult([]byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to parse query result: %v", err)), nil
		}

		normalizer := azurecostmanagement.NewNormalizer(deps.Logger)
		if request.GetBool("by_resource_group", false) {
			return jsonResult(response.ConvertResourceGroupCostResults(normalizer.MapResourceGroupCosts(result.Columns, result.Rows)))
		}
		return jsonResult(response.ConvertDailyCostResults(normalizer.MapDailyCosts(result.Columns, result.Rows)))
	}
}

func requireSubscription(deps Deps, request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	subscriptionID := request.GetString("subscription_id", deps.SubscriptionID)
	if subscriptionID == "" {
		return "", mcp.NewToolResultError("subscription_id argument or AZURE_SUBSCRIPTION_ID environment variable is required")
	}
	return subscriptionID, nil
}

func costService(deps Deps, request mcp.CallToolRequest) (service.CostService, *mcp.CallToolResult) {
	subscriptionID, errResult := requireSubscription(deps, request)
	if errResult != nil {
		return nil, errResult
	}

	svc, err := deps.Factories.NewCostService(subscriptionID, deps.Credential)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure cost service: %v", err))
	}
	return svc, nil
}

func resourceService(deps Deps, request mcp.CallToolRequest) (service.ResourceService, *mcp.CallToolResult) {
	subscriptionID, errResult := requireSubscription(deps, request)
	if errResult != nil {
		return nil, errResult
	}

	svc, err := deps.Factories.NewResourceService(subscriptionID, deps.Credential)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Azure resource service: %v", err))
	}
	return svc, nil
}

func jsonResult(body any) (*mcp.CallToolResult, error) {
	data, err := response.Marshal(body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(data), nil
}
