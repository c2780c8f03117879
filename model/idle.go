package model

// Reservation states reported by the idle resources scan
const (
	ReservationExpiring = "expiring"
	ReservationExpired  = "expired"
)

// IdleDisk is a managed disk that is not attached to any VM
type IdleDisk struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Location      string `json:"location"`
	SKU           string `json:"sku"`
	SizeGB        int32  `json:"size_gb"`
}

// DeallocatedVM is a VM that is deallocated but still holds its managed disks
type DeallocatedVM struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ResourceGroup string   `json:"resource_group"`
	Location      string   `json:"location"`
	Size          string   `json:"size"`
	Disks         []string `json:"disks"`
	DiskSizeGB    int32    `json:"disk_size_gb"`
}

// IdlePublicIP is a public IP address with no IP configuration or NAT gateway
type IdlePublicIP struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ResourceGroup string `json:"resource_group"`
	Address       string `json:"address"`
}

// ExpiringReservation is a reservation order that expires soon or expired recently.
// DaysUntilExpiry is negative for expired orders.
type ExpiringReservation struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	ExpiryDate      string `json:"expiry_date"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	Status          string `json:"status"`
}

// IdleResources groups resources that keep billing without doing work
type IdleResources struct {
	UnattachedDisks       []IdleDisk            `json:"unattached_disks"`
	DeallocatedVMs        []DeallocatedVM       `json:"deallocated_vms"`
	UnassociatedPublicIPs []IdlePublicIP        `json:"unassociated_public_ips"`
	ExpiringReservations  []ExpiringReservation `json:"expiring_reservations"`
}
