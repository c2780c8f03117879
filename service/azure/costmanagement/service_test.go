package azurecostmanagement

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

type mockQueryAPI struct {
	usageFunc func(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error)
	calls     int
}

func (m *mockQueryAPI) Usage(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
	m.calls++
	return m.usageFunc(ctx, scope, parameters, options)
}

func queryResponse(columns []*armcostmanagement.QueryColumn, rows [][]any) armcostmanagement.QueryClientUsageResponse {
	return armcostmanagement.QueryClientUsageResponse{
		QueryResult: armcostmanagement.QueryResult{
			Properties: &armcostmanagement.QueryProperties{
				Columns: columns,
				Rows:    rows,
			},
		},
	}
}

func newTestService(api QueryAPI) *service {
	s := NewServiceWithAPI("sub1", api, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2024, 11, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestGetLastMonthDailyCosts_BuildsDailyUsageQuery(t *testing.T) {
	var gotScope string
	var gotQuery armcostmanagement.QueryDefinition

	api := &mockQueryAPI{
		usageFunc: func(_ context.Context, scope string, parameters armcostmanagement.QueryDefinition, _ *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			gotScope = scope
			gotQuery = parameters
			return queryResponse(
				[]*armcostmanagement.QueryColumn{
					{Name: to.Ptr("Cost"), Type: to.Ptr("Number")},
					{Name: to.Ptr("UsageDate"), Type: to.Ptr("Number")},
					{Name: to.Ptr("Currency"), Type: to.Ptr("String")},
				},
				[][]any{{12.34, float64(20241001), "USD"}, {0.5, float64(20241002), "USD"}},
			), nil
		},
	}

	costs, err := newTestService(api).GetLastMonthDailyCosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)

	assert.Equal(t, "/subscriptions/sub1", gotScope)
	assert.Equal(t, armcostmanagement.ExportTypeUsage, *gotQuery.Type)
	assert.Equal(t, armcostmanagement.TimeframeTypeCustom, *gotQuery.Timeframe)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), *gotQuery.TimePeriod.From)
	assert.Equal(t, time.Date(2024, 10, 31, 23, 59, 59, 999999000, time.UTC), *gotQuery.TimePeriod.To)
	assert.Equal(t, armcostmanagement.GranularityTypeDaily, *gotQuery.Dataset.Granularity)
	require.Contains(t, gotQuery.Dataset.Aggregation, "totalCost")
	assert.Equal(t, "Cost", *gotQuery.Dataset.Aggregation["totalCost"].Name)
	assert.Equal(t, armcostmanagement.FunctionTypeSum, *gotQuery.Dataset.Aggregation["totalCost"].Function)
	assert.Empty(t, gotQuery.Dataset.Grouping)

	assert.Equal(t, []model.DailyCost{
		{UsageDate: "2024-10-01", Cost: 12.34},
		{UsageDate: "2024-10-02", Cost: 0.5},
	}, costs)
}

func TestGetLastMonthCostsByResourceGroup_GroupsByResourceGroupName(t *testing.T) {
	var gotQuery armcostmanagement.QueryDefinition

	api := &mockQueryAPI{
		usageFunc: func(_ context.Context, _ string, parameters armcostmanagement.QueryDefinition, _ *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			gotQuery = parameters
			return queryResponse(
				[]*armcostmanagement.QueryColumn{
					{Name: to.Ptr("UsageDate")},
					{Name: to.Ptr("ResourceGroupName")},
					{Name: to.Ptr("totalCost")},
				},
				[][]any{{"2024-10-01", "rg1", 1.23}, {"2024-10-02", "rg1", 4.56}},
			), nil
		},
	}

	costs, err := newTestService(api).GetLastMonthCostsByResourceGroup(context.Background())
	require.NoError(t, err)

	require.Len(t, gotQuery.Dataset.Grouping, 1)
	assert.Equal(t, armcostmanagement.QueryColumnTypeDimension, *gotQuery.Dataset.Grouping[0].Type)
	assert.Equal(t, "ResourceGroupName", *gotQuery.Dataset.Grouping[0].Name)

	assert.Equal(t, []model.ResourceGroupCost{
		{Date: "2024-10-01", ResourceGroup: "rg1", Cost: 1.23},
		{Date: "2024-10-02", ResourceGroup: "rg1", Cost: 4.56},
	}, costs)
}

func TestGetLastMonthDailyCosts_UpstreamFailure(t *testing.T) {
	boom := errors.New("403 AuthorizationFailed")
	api := &mockQueryAPI{
		usageFunc: func(context.Context, string, armcostmanagement.QueryDefinition, *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			return armcostmanagement.QueryClientUsageResponse{}, boom
		},
	}

	costs, err := newTestService(api).GetLastMonthDailyCosts(context.Background())
	assert.Nil(t, costs)
	assert.ErrorIs(t, err, ErrUpstreamQuery)
	assert.ErrorIs(t, err, boom)
}

func TestGetLastMonthDailyCosts_EmptyProperties(t *testing.T) {
	api := &mockQueryAPI{
		usageFunc: func(context.Context, string, armcostmanagement.QueryDefinition, *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			return armcostmanagement.QueryClientUsageResponse{}, nil
		},
	}

	costs, err := newTestService(api).GetLastMonthDailyCosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestGetLastMonthCostsByResourceGroup_MalformedRow(t *testing.T) {
	api := &mockQueryAPI{
		usageFunc: func(context.Context, string, armcostmanagement.QueryDefinition, *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			return queryResponse(
				[]*armcostmanagement.QueryColumn{{Name: to.Ptr("Cost")}, {Name: to.Ptr("UsageDate")}},
				[][]any{{1.0, "2024-10-01"}, {2.0}},
			), nil
		},
	}

	_, err := newTestService(api).GetLastMonthCostsByResourceGroup(context.Background())
	var malformed *MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
}

func TestGetLastMonthSummary(t *testing.T) {
	api := &mockQueryAPI{
		usageFunc: func(context.Context, string, armcostmanagement.QueryDefinition, *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			return queryResponse(
				[]*armcostmanagement.QueryColumn{{Name: to.Ptr("UsageDate")}, {Name: to.Ptr("Cost")}},
				[][]any{{"2024-10-01", 31.0}, {"2024-10-02", 31.0}},
			), nil
		},
	}

	summary, err := newTestService(api).GetLastMonthSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 62.0, summary.TotalCost)
	assert.Equal(t, 31, summary.PeriodDays)
	assert.InDelta(t, 2.0, summary.AvgDailyCost, 1e-9)
	assert.Equal(t, "2024-10-01", summary.Start)
	assert.Equal(t, "2024-10-31", summary.End)
}

func TestQuery_LogsWindowMatchingQueryTimePeriod(t *testing.T) {
	var gotQuery armcostmanagement.QueryDefinition
	api := &mockQueryAPI{
		usageFunc: func(_ context.Context, _ string, parameters armcostmanagement.QueryDefinition, _ *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error) {
			gotQuery = parameters
			return queryResponse(nil, nil), nil
		},
	}

	var logs bytes.Buffer
	s := NewServiceWithAPI("sub1", api, zerolog.New(&logs).Level(zerolog.DebugLevel))
	s.now = func() time.Time { return time.Date(2024, 11, 15, 9, 0, 0, 0, time.UTC) }

	_, err := s.GetLastMonthCostsByResourceGroup(context.Background())
	require.NoError(t, err)

	window := s.LastMonthWindow()
	assert.Equal(t, window.Start, *gotQuery.TimePeriod.From)
	assert.Equal(t, window.End, *gotQuery.TimePeriod.To)

	assert.Contains(t, logs.String(), `"from":"2024-10-01T00:00:00Z"`)
	assert.Contains(t, logs.String(), `"to":"2024-10-31T23:59:59.999999Z"`)
	assert.Contains(t, logs.String(), `"by_resource_group":true`)
}
