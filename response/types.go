package response

import "github.com/GaleasAndres/azure-cost-analytics-dashboard/model"

// AccountInfo represents the subscription a report was produced for
type AccountInfo struct {
	Provider    string `json:"provider"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// Error is the body of every non-2xx API response
type Error struct {
	Error string `json:"error"`
}

// DailyCosts is the body of GET /api/costs/last-month
type DailyCosts struct {
	Costs []model.DailyCost `json:"costs"`
}

// ResourceGroupCosts is the body of GET /api/costs/by-resource-group
type ResourceGroupCosts struct {
	Costs []model.ResourceGroupCost `json:"costs"`
}

// CostSummary is the body of GET /api/costs/summary
type CostSummary struct {
	TotalCost    float64 `json:"total_cost"`
	AvgDailyCost float64 `json:"avg_daily_cost"`
	PeriodDays   int     `json:"period_days"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

// Subscriptions is the body of GET /api/subscriptions
type Subscriptions struct {
	Subscriptions []model.Subscription `json:"subscriptions"`
}

// Tenants is the body of GET /api/tenants
type Tenants struct {
	Tenants []model.Tenant `json:"tenants"`
}

// ResourceGroups is the body of GET /api/resource-groups
type ResourceGroups struct {
	ResourceGroups []model.ResourceGroup `json:"resource_groups"`
}

// Resources is the body of GET /api/resources
type Resources struct {
	Resources []model.Resource `json:"resources"`
}

// User is the signed-in user as shown by the frontend
type User struct {
	Name string `json:"name"`
}

// AuthStatus is the body of GET /api/auth/status
type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

// Health is the body of GET /healthz
type Health struct {
	Status string `json:"status"`
}

// MalformedRow describes a row the normalizer could not map
type MalformedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NormalizeReport is produced by the CLI and MCP normalize commands
type NormalizeReport struct {
	Rows      int            `json:"rows"`
	Mapped    int            `json:"mapped"`
	Malformed []MalformedRow `json:"malformed,omitempty"`
	Records   any            `json:"records"`
}

// IdleResources is the body of GET /api/resources/idle
type IdleResources struct {
	UnattachedDisks       []model.IdleDisk            `json:"unattached_disks"`
	DeallocatedVMs        []model.DeallocatedVM       `json:"deallocated_vms"`
	UnassociatedPublicIPs []model.IdlePublicIP        `json:"unassociated_public_ips"`
	ExpiringReservations  []model.ExpiringReservation `json:"expiring_reservations"`

	// Storage still billed: unattached disks plus disks held by deallocated VMs
	IdleDiskGB int32 `json:"idle_disk_gb"`
}
