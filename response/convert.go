package response

import (
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
)

// ConvertAccountInfo converts model.AccountInfo to response format
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertCostSummary flattens model.CostSummary into the API shape
func ConvertCostSummary(summary *model.CostSummary) *CostSummary {
	if summary == nil {
		return nil
	}
	return &CostSummary{
		TotalCost:    summary.TotalCost,
		AvgDailyCost: summary.AvgDailyCost,
		PeriodDays:   summary.PeriodDays,
		StartDate:    summary.Start,
		EndDate:      summary.End,
	}
}

// NewDailyCosts wraps daily costs, never encoding a null array
func NewDailyCosts(costs []model.DailyCost) DailyCosts {
	if costs == nil {
		costs = []model.DailyCost{}
	}
	return DailyCosts{Costs: costs}
}

// NewResourceGroupCosts wraps resource group costs, never encoding a null array
func NewResourceGroupCosts(costs []model.ResourceGroupCost) ResourceGroupCosts {
	if costs == nil {
		costs = []model.ResourceGroupCost{}
	}
	return ResourceGroupCosts{Costs: costs}
}

// NewAuthStatus builds the auth status body. An unauthenticated status carries no user.
func NewAuthStatus(authenticated bool, userName string) AuthStatus {
	if !authenticated {
		return AuthStatus{}
	}
	return AuthStatus{Authenticated: true, User: &User{Name: userName}}
}

// ConvertDailyCostResults reports mapped records alongside the rows that failed
func ConvertDailyCostResults(results []azurecostmanagement.DailyCostResult) NormalizeReport {
	records := []model.DailyCost{}
	report := NormalizeReport{Rows: len(results)}

	for _, r := range results {
		if r.Err != nil {
			report.Malformed = append(report.Malformed, MalformedRow{Index: r.Index, Reason: r.Err.Error()})
			continue
		}
		records = append(records, r.Record)
	}

	report.Mapped = len(records)
	report.Records = records
	return report
}

// ConvertResourceGroupCostResults reports mapped records alongside the rows that failed
func ConvertResourceGroupCostResults(results []azurecostmanagement.ResourceGroupCostResult) NormalizeReport {
	records := []model.ResourceGroupCost{}
	report := NormalizeReport{Rows: len(results)}

	for _, r := range results {
		if r.Err != nil {
			report.Malformed = append(report.Malformed, MalformedRow{Index: r.Index, Reason: r.Err.Error()})
			continue
		}
		records = append(records, r.Record)
	}

	report.Mapped = len(records)
	report.Records = records
	return report
}

// NewIdleResources wraps the idle scan, never encoding a null array
func NewIdleResources(idle *model.IdleResources) IdleResources {
	out := IdleResources{
		UnattachedDisks:       []model.IdleDisk{},
		DeallocatedVMs:        []model.DeallocatedVM{},
		UnassociatedPublicIPs: []model.IdlePublicIP{},
		ExpiringReservations:  []model.ExpiringReservation{},
	}
	if idle == nil {
		return out
	}

	if idle.UnattachedDisks != nil {
		out.UnattachedDisks = idle.UnattachedDisks
	}
	if idle.DeallocatedVMs != nil {
		out.DeallocatedVMs = idle.DeallocatedVMs
	}
	if idle.UnassociatedPublicIPs != nil {
		out.UnassociatedPublicIPs = idle.UnassociatedPublicIPs
	}
	if idle.ExpiringReservations != nil {
		out.ExpiringReservations = idle.ExpiringReservations
	}

	for _, disk := range out.UnattachedDisks {
		out.IdleDiskGB += disk.SizeGB
	}
	for _, vm := range out.DeallocatedVMs {
		out.IdleDiskGB += vm.DiskSizeGB
	}
	return out
}
