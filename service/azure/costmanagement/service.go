package azurecostmanagement

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

func NewService(subscriptionID string, credential azcore.TokenCredential, logger zerolog.Logger) (*service, error) {
	client, err := armcostmanagement.NewQueryClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cost management client: %w", err)
	}

	return NewServiceWithAPI(subscriptionID, client, logger), nil
}

// NewServiceWithAPI creates a service over a custom QueryAPI implementation
func NewServiceWithAPI(subscriptionID string, api QueryAPI, logger zerolog.Logger) *service {
	logger = logger.With().
		Str("component", "costmanagement").
		Str("subscription_id", subscriptionID).
		Logger()

	return &service{
		subscriptionID: subscriptionID,
		client:         api,
		normalizer:     NewNormalizer(logger),
		logger:         logger,
		now:            time.Now,
	}
}

// LastMonthWindow implements CostManagementService
func (s *service) LastMonthWindow() Window {
	return LastMonthWindow(s.now())
}

// GetLastMonthDailyCosts implements CostManagementService
func (s *service) GetLastMonthDailyCosts(ctx context.Context) ([]model.DailyCost, error) {
	window := s.LastMonthWindow()

	columns, rows, err := s.query(ctx, window, false)
	if err != nil {
		return nil, err
	}

	return s.normalizer.NormalizeDailyCosts(columns, rows)
}

// GetLastMonthCostsByResourceGroup implements CostManagementService
func (s *service) GetLastMonthCostsByResourceGroup(ctx context.Context) ([]model.ResourceGroupCost, error) {
	window := s.LastMonthWindow()

	columns, rows, err := s.query(ctx, window, true)
	if err != nil {
		return nil, err
	}

	return s.normalizer.NormalizeResourceGroupCosts(columns, rows)
}

// GetLastMonthSummary implements CostManagementService
func (s *service) GetLastMonthSummary(ctx context.Context) (*model.CostSummary, error) {
	window := s.LastMonthWindow()

	columns, rows, err := s.query(ctx, window, false)
	if err != nil {
		return nil, err
	}

	costs, err := s.normalizer.NormalizeDailyCosts(columns, rows)
	if err != nil {
		return nil, err
	}

	return Summarize(costs, window), nil
}

// Summarize totals daily costs over a window
func Summarize(costs []model.DailyCost, window Window) *model.CostSummary {
	var total float64
	for _, c := range costs {
		total += c.Cost
	}

	days := window.Days()
	avg := 0.0
	if days > 0 {
		avg = total / float64(days)
	}

	return &model.CostSummary{
		DateInterval: model.DateInterval{
			Start: window.StartDate(),
			End:   window.EndDate(),
		},
		TotalCost:    total,
		AvgDailyCost: avg,
		PeriodDays:   days,
	}
}

func (s *service) query(ctx context.Context, window Window, byResourceGroup bool) ([]ColumnDescriptor, [][]any, error) {
	scope := fmt.Sprintf("/subscriptions/%s", s.subscriptionID)

	s.logger.Debug().
		Str("from", window.StartISO()).
		Str("to", window.EndISO()).
		Bool("by_resource_group", byResourceGroup).
		Msg("querying cost management")

	resp, err := s.client.Usage(ctx, scope, buildQueryDefinition(window, byResourceGroup), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUpstreamQuery, err)
	}

	if resp.Properties == nil {
		return nil, nil, nil
	}

	if resp.Properties.NextLink != nil && *resp.Properties.NextLink != "" {
		s.logger.Warn().
			Int("rows", len(resp.Properties.Rows)).
			Msg("query result has more pages, only the first page is reported")
	}

	return FromQueryColumns(resp.Properties.Columns), resp.Properties.Rows, nil
}

// buildQueryDefinition describes a daily Usage query over window, optionally grouped
// by resource group name.
func buildQueryDefinition(window Window, byResourceGroup bool) armcostmanagement.QueryDefinition {
	queryDefinition := armcostmanagement.QueryDefinition{
		Type:      to.Ptr(armcostmanagement.ExportTypeUsage),
		Timeframe: to.Ptr(armcostmanagement.TimeframeTypeCustom),
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: to.Ptr(window.Start),
			To:   to.Ptr(window.End),
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: to.Ptr(armcostmanagement.GranularityTypeDaily),
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: to.Ptr(armcostmanagement.FunctionTypeSum),
				},
			},
		},
	}

	if byResourceGroup {
		queryDefinition.Dataset.Grouping = []*armcostmanagement.QueryGrouping{
			{
				Type: to.Ptr(armcostmanagement.QueryColumnTypeDimension),
				Name: to.Ptr("ResourceGroupName"),
			},
		}
	}

	return queryDefinition
}
