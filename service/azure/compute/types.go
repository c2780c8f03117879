package azurecompute

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// ReservationWindow is how far either side of now a reservation's expiry must fall
// to be reported
const ReservationWindow = 30 * 24 * time.Hour

// DisksAPI is the subset of armcompute.DisksClient used by the service
type DisksAPI interface {
	NewListPager(options *armcompute.DisksClientListOptions) *runtime.Pager[armcompute.DisksClientListResponse]
}

// VirtualMachinesAPI is the subset of armcompute.VirtualMachinesClient used by the service
type VirtualMachinesAPI interface {
	NewListAllPager(options *armcompute.VirtualMachinesClientListAllOptions) *runtime.Pager[armcompute.VirtualMachinesClientListAllResponse]
	InstanceView(ctx context.Context, resourceGroupName string, vmName string, options *armcompute.VirtualMachinesClientInstanceViewOptions) (armcompute.VirtualMachinesClientInstanceViewResponse, error)
}

// PublicIPAddressesAPI is the subset of armnetwork.PublicIPAddressesClient used by the service
type PublicIPAddressesAPI interface {
	NewListAllPager(options *armnetwork.PublicIPAddressesClientListAllOptions) *runtime.Pager[armnetwork.PublicIPAddressesClientListAllResponse]
}

// ReservationOrdersAPI is the subset of armreservations.ReservationOrderClient used by the service
type ReservationOrdersAPI interface {
	NewListPager(options *armreservations.ReservationOrderClientListOptions) *runtime.Pager[armreservations.ReservationOrderClientListResponse]
}

// Clients bundles the ARM clients the scan reads from
type Clients struct {
	Disks             DisksAPI
	VirtualMachines   VirtualMachinesAPI
	PublicIPAddresses PublicIPAddressesAPI
	ReservationOrders ReservationOrdersAPI
}

type service struct {
	subscriptionID string
	clients        Clients
	logger         zerolog.Logger
	now            func() time.Time
}

type ComputeService interface {
	GetIdleResources(ctx context.Context) (*model.IdleResources, error)
	GetUnattachedDisks(ctx context.Context) ([]model.IdleDisk, error)
	GetDeallocatedVMs(ctx context.Context) ([]model.DeallocatedVM, error)
	GetUnassociatedPublicIPs(ctx context.Context) ([]model.IdlePublicIP, error)
	GetExpiringReservations(ctx context.Context) ([]model.ExpiringReservation, error)
}
