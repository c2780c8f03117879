package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "subscription_id is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"subscription_id is required"}`, rec.Body.String())
}

func TestNewDailyCosts_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, NewDailyCosts(nil))
	assert.JSONEq(t, `{"costs":[]}`, rec.Body.String())
}

func TestResourceGroupCostsShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, NewResourceGroupCosts([]model.ResourceGroupCost{
		{Date: "2024-10-01", ResourceGroup: "rg1", Cost: 1.5},
	}))
	assert.JSONEq(t, `{"costs":[{"date":"2024-10-01","resource_group":"rg1","cost":1.5}]}`, rec.Body.String())
}

func TestConvertCostSummary(t *testing.T) {
	assert.Nil(t, ConvertCostSummary(nil))

	summary := &model.CostSummary{
		DateInterval: model.DateInterval{Start: "2024-10-01", End: "2024-10-31"},
		TotalCost:    62,
		AvgDailyCost: 2,
		PeriodDays:   31,
	}
	out, err := Marshal(ConvertCostSummary(summary))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_cost":62,"avg_daily_cost":2,"period_days":31,"start_date":"2024-10-01","end_date":"2024-10-31"}`, out)
}

func TestNewAuthStatus(t *testing.T) {
	out, err := Marshal(NewAuthStatus(false, "ignored"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":false,"user":null}`, out)

	out, err = Marshal(NewAuthStatus(true, "Ada Lovelace"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":true,"user":{"name":"Ada Lovelace"}}`, out)
}

func TestConvertAccountInfo(t *testing.T) {
	assert.Nil(t, ConvertAccountInfo(nil))
	assert.Equal(t, &AccountInfo{Provider: "azure", AccountID: "sub1", AccountName: "Prod"},
		ConvertAccountInfo(&model.AccountInfo{Provider: "azure", AccountID: "sub1", AccountName: "Prod"}))
}

func TestConvertDailyCostResults(t *testing.T) {
	report := ConvertDailyCostResults([]azurecostmanagement.DailyCostResult{
		{Index: 0, Record: model.DailyCost{UsageDate: "2024-10-01", Cost: 1}},
		{Index: 1, Err: errors.New("row shorter than resolved columns")},
	})

	out, err := Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"rows": 2,
		"mapped": 1,
		"malformed": [{"index": 1, "reason": "row shorter than resolved columns"}],
		"records": [{"UsageDate": "2024-10-01", "Cost": 1}]
	}`, out)
}

func TestConvertResourceGroupCostResults_NoFailures(t *testing.T) {
	report := ConvertResourceGroupCostResults([]azurecostmanagement.ResourceGroupCostResult{
		{Index: 0, Record: model.ResourceGroupCost{Date: "2024-10-01", ResourceGroup: "Unknown", Cost: 2}},
	})

	out, err := Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":1,"mapped":1,"records":[{"date":"2024-10-01","resource_group":"Unknown","cost":2}]}`, out)
}

func TestNewIdleResources(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, NewIdleResources(nil))
	assert.JSONEq(t, `{
		"unattached_disks": [],
		"deallocated_vms": [],
		"unassociated_public_ips": [],
		"expiring_reservations": [],
		"idle_disk_gb": 0
	}`, rec.Body.String())

	idle := NewIdleResources(&model.IdleResources{
		UnattachedDisks: []model.IdleDisk{{Name: "orphan", SizeGB: 128}},
		DeallocatedVMs:  []model.DeallocatedVM{{Name: "stopped", Disks: []string{"os"}, DiskSizeGB: 30}},
	})
	assert.Equal(t, int32(158), idle.IdleDiskGB)
	assert.NotNil(t, idle.UnassociatedPublicIPs)
}
