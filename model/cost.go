package model

// DateInterval represents a time period for cost analysis
type DateInterval struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// DailyCost is the normalized daily-total record returned by the last-month query
type DailyCost struct {
	UsageDate string  `json:"UsageDate"`
	Cost      float64 `json:"Cost"`
}

// ResourceGroupCost is the normalized per-resource-group daily record
type ResourceGroupCost struct {
	Date          string  `json:"date"`
	ResourceGroup string  `json:"resource_group"`
	Cost          float64 `json:"cost"`
}

// CostSummary aggregates the daily totals of a reporting window
type CostSummary struct {
	DateInterval
	TotalCost    float64 `json:"total_cost"`
	AvgDailyCost float64 `json:"avg_daily_cost"`
	PeriodDays   int     `json:"period_days"`
}

// UnknownResourceGroup is reported when a row carries no resource group value
const UnknownResourceGroup = "Unknown"
