package model

// AccountInfo represents the subscription a report was produced for
type AccountInfo struct {
	Provider    string
	AccountID   string
	AccountName string
}

// Subscription represents an Azure subscription visible to the signed-in user
type Subscription struct {
	SubscriptionID string `json:"subscription_id"`
	DisplayName    string `json:"display_name"`
	State          string `json:"state"`
}

// Tenant represents an Azure AD tenant visible to the signed-in user
type Tenant struct {
	TenantID      string `json:"tenant_id"`
	DisplayName   string `json:"display_name"`
	DefaultDomain string `json:"default_domain"`
}

// ResourceGroup represents an Azure resource group
type ResourceGroup struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Resource represents a single Azure resource
type Resource struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	ResourceGroup string `json:"resource_group"`
}
