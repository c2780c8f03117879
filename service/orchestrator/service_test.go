package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

type mockIdentity struct {
	err error
}

func (m *mockIdentity) GetAccountInfo(context.Context) (*model.AccountInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.AccountInfo{Provider: "azure", AccountID: "sub1", AccountName: "Production"}, nil
}

func (m *mockIdentity) ListSubscriptions(context.Context) ([]model.Subscription, error) {
	return nil, nil
}

func (m *mockIdentity) ListTenants(context.Context) ([]model.Tenant, error) {
	return nil, nil
}

type mockCosts struct {
	err   error
	calls []string
}

func (m *mockCosts) GetLastMonthDailyCosts(context.Context) ([]model.DailyCost, error) {
	m.calls = append(m.calls, "daily")
	return []model.DailyCost{{UsageDate: "2024-10-01", Cost: 4.5}}, m.err
}

func (m *mockCosts) GetLastMonthCostsByResourceGroup(context.Context) ([]model.ResourceGroupCost, error) {
	m.calls = append(m.calls, "by-resource-group")
	return []model.ResourceGroupCost{{Date: "2024-10-01", ResourceGroup: "rg-web", Cost: 4.5}}, m.err
}

func (m *mockCosts) GetLastMonthSummary(context.Context) (*model.CostSummary, error) {
	m.calls = append(m.calls, "summary")
	return &model.CostSummary{
		DateInterval: model.DateInterval{Start: "2024-10-01", End: "2024-10-31"},
		TotalCost:    4.5,
		PeriodDays:   31,
	}, m.err
}

func TestOrchestrate_Reports(t *testing.T) {
	tests := []struct {
		report   string
		wantCall string
		wantText string
	}{
		{"", "daily", "2024-10-01"},
		{model.ReportLastMonth, "daily", "4.50"},
		{model.ReportByResourceGroup, "by-resource-group", "rg-web"},
		{model.ReportSummary, "summary", "2024-10-01 to 2024-10-31"},
	}

	for _, tt := range tests {
		t.Run(tt.report, func(t *testing.T) {
			var out bytes.Buffer
			costs := &mockCosts{}

			err := NewService(&mockIdentity{}, costs, &out).Orchestrate(context.Background(), model.Flags{Report: tt.report})
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantCall}, costs.calls)
			assert.Contains(t, out.String(), "Production")
			assert.Contains(t, out.String(), tt.wantText)
		})
	}
}

func TestOrchestrate_Chart(t *testing.T) {
	var out bytes.Buffer
	err := NewService(&mockIdentity{}, &mockCosts{}, &out).Orchestrate(context.Background(), model.Flags{Chart: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Subscription: Production")
}

func TestOrchestrate_Errors(t *testing.T) {
	boom := errors.New("boom")

	err := NewService(&mockIdentity{}, &mockCosts{err: boom}, &bytes.Buffer{}).Orchestrate(context.Background(), model.Flags{})
	assert.ErrorIs(t, err, boom)

	err = NewService(&mockIdentity{err: boom}, &mockCosts{}, &bytes.Buffer{}).Orchestrate(context.Background(), model.Flags{Report: model.ReportSummary})
	assert.ErrorIs(t, err, boom)

	err = NewService(&mockIdentity{}, &mockCosts{}, &bytes.Buffer{}).Orchestrate(context.Background(), model.Flags{Report: "trend"})
	assert.ErrorContains(t, err, "unknown report")
}
