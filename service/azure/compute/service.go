package azurecompute

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/reservations/armreservations"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

func NewService(subscriptionID string, credential azcore.TokenCredential, logger zerolog.Logger) (*service, error) {
	disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}

	vmClient, err := armcompute.NewVirtualMachinesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create VM client: %w", err)
	}

	publicIPClient, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}

	reservationsClient, err := armreservations.NewReservationOrderClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservations client: %w", err)
	}

	return NewServiceWithAPI(subscriptionID, Clients{
		Disks:             disksClient,
		VirtualMachines:   vmClient,
		PublicIPAddresses: publicIPClient,
		ReservationOrders: reservationsClient,
	}, logger), nil
}

func NewServiceWithAPI(subscriptionID string, clients Clients, logger zerolog.Logger) *service {
	return &service{
		subscriptionID: subscriptionID,
		clients:        clients,
		logger:         logger.With().Str("subscription_id", subscriptionID).Logger(),
		now:            time.Now,
	}
}

// GetIdleResources runs the four scans concurrently. Reservation failures are
// logged and reported as an empty list since many principals cannot read them.
func (s *service) GetIdleResources(ctx context.Context) (*model.IdleResources, error) {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		errs   []error
		result model.IdleResources
	)

	run := func(scan func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := scan(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func() (err error) {
		result.UnattachedDisks, err = s.GetUnattachedDisks(ctx)
		return err
	})
	run(func() (err error) {
		result.DeallocatedVMs, err = s.GetDeallocatedVMs(ctx)
		return err
	})
	run(func() (err error) {
		result.UnassociatedPublicIPs, err = s.GetUnassociatedPublicIPs(ctx)
		return err
	})
	run(func() error {
		reservations, err := s.GetExpiringReservations(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("skipping reservations")
			reservations = []model.ExpiringReservation{}
		}
		result.ExpiringReservations = reservations
		return nil
	})

	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &result, nil
}

// GetUnattachedDisks returns managed disks whose state is Unattached
func (s *service) GetUnattachedDisks(ctx context.Context) ([]model.IdleDisk, error) {
	disks := []model.IdleDisk{}

	pager := s.clients.Disks.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list disks: %w", err)
		}

		for _, disk := range page.Value {
			if disk == nil || disk.Properties == nil || disk.Properties.DiskState == nil {
				continue
			}
			if *disk.Properties.DiskState != armcompute.DiskStateUnattached {
				continue
			}

			idle := model.IdleDisk{
				ID:            deref(disk.ID),
				Name:          deref(disk.Name),
				ResourceGroup: utils.ExtractResourceGroup(deref(disk.ID)),
				Location:      deref(disk.Location),
			}
			if disk.SKU != nil && disk.SKU.Name != nil {
				idle.SKU = string(*disk.SKU.Name)
			}
			if disk.Properties.DiskSizeGB != nil {
				idle.SizeGB = *disk.Properties.DiskSizeGB
			}
			disks = append(disks, idle)
		}
	}

	return disks, nil
}

// GetDeallocatedVMs returns VMs whose power state is deallocated, with the managed
// disks they still hold. VMs whose instance view cannot be read are skipped.
func (s *service) GetDeallocatedVMs(ctx context.Context) ([]model.DeallocatedVM, error) {
	vms := []model.DeallocatedVM{}

	pager := s.clients.VirtualMachines.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list VMs: %w", err)
		}

		for _, vm := range page.Value {
			if vm == nil || vm.ID == nil || vm.Name == nil {
				continue
			}

			resourceGroup := utils.ExtractResourceGroup(*vm.ID)
			view, err := s.clients.VirtualMachines.InstanceView(ctx, resourceGroup, *vm.Name, nil)
			if err != nil {
				s.logger.Debug().Err(err).Str("vm", *vm.Name).Msg("skipping VM without instance view")
				continue
			}
			if !isDeallocated(view.Statuses) {
				continue
			}

			vms = append(vms, convertVM(vm, resourceGroup))
		}
	}

	return vms, nil
}

func isDeallocated(statuses []*armcompute.InstanceViewStatus) bool {
	for _, status := range statuses {
		if status != nil && status.Code != nil && strings.HasPrefix(*status.Code, "PowerState/deallocated") {
			return true
		}
	}
	return false
}

func convertVM(vm *armcompute.VirtualMachine, resourceGroup string) model.DeallocatedVM {
	out := model.DeallocatedVM{
		ID:            *vm.ID,
		Name:          *vm.Name,
		ResourceGroup: resourceGroup,
		Location:      deref(vm.Location),
		Disks:         []string{},
	}

	if vm.Properties == nil {
		return out
	}
	if hw := vm.Properties.HardwareProfile; hw != nil && hw.VMSize != nil {
		out.Size = string(*hw.VMSize)
	}

	storage := vm.Properties.StorageProfile
	if storage == nil {
		return out
	}

	addDisk := func(managed *armcompute.ManagedDiskParameters, sizeGB *int32) {
		if managed == nil || managed.ID == nil {
			return
		}
		out.Disks = append(out.Disks, resourceName(*managed.ID))
		if sizeGB != nil {
			out.DiskSizeGB += *sizeGB
		}
	}

	if storage.OSDisk != nil {
		addDisk(storage.OSDisk.ManagedDisk, storage.OSDisk.DiskSizeGB)
	}
	for _, dataDisk := range storage.DataDisks {
		if dataDisk != nil {
			addDisk(dataDisk.ManagedDisk, dataDisk.DiskSizeGB)
		}
	}
	return out
}

// GetUnassociatedPublicIPs returns public IPs bound to neither an IP configuration
// nor a NAT gateway
func (s *service) GetUnassociatedPublicIPs(ctx context.Context) ([]model.IdlePublicIP, error) {
	ips := []model.IdlePublicIP{}

	pager := s.clients.PublicIPAddresses.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list public IPs: %w", err)
		}

		for _, ip := range page.Value {
			if ip == nil || ip.Properties == nil {
				continue
			}
			if ip.Properties.IPConfiguration != nil || ip.Properties.NatGateway != nil {
				continue
			}

			ips = append(ips, model.IdlePublicIP{
				ID:            deref(ip.ID),
				Name:          deref(ip.Name),
				ResourceGroup: utils.ExtractResourceGroup(deref(ip.ID)),
				Address:       deref(ip.Properties.IPAddress),
			})
		}
	}

	return ips, nil
}

// GetExpiringReservations returns succeeded reservation orders expiring within
// ReservationWindow and orders that expired within the same window
func (s *service) GetExpiringReservations(ctx context.Context) ([]model.ExpiringReservation, error) {
	reservations := []model.ExpiringReservation{}
	now := s.now()

	pager := s.clients.ReservationOrders.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reservation orders: %w", err)
		}

		for _, order := range page.Value {
			if order == nil || order.Properties == nil || order.Properties.ExpiryDate == nil {
				continue
			}

			expiry := *order.Properties.ExpiryDate
			status := ""
			switch {
			case expiry.After(now) && expiry.Before(now.Add(ReservationWindow)):
				state := order.Properties.ProvisioningState
				if state == nil || *state != armreservations.ProvisioningStateSucceeded {
					continue
				}
				status = model.ReservationExpiring
			case !expiry.After(now) && expiry.After(now.Add(-ReservationWindow)):
				status = model.ReservationExpired
			default:
				continue
			}

			reservations = append(reservations, model.ExpiringReservation{
				ID:              deref(order.ID),
				Name:            deref(order.Name),
				DisplayName:     deref(order.Properties.DisplayName),
				ExpiryDate:      expiry.UTC().Format("2006-01-02"),
				DaysUntilExpiry: int(expiry.Sub(now).Hours() / 24),
				Status:          status,
			})
		}
	}

	return reservations, nil
}

func resourceName(id string) string {
	if parsed, err := utils.ParseResourceID(id); err == nil && parsed.Name != "" {
		return parsed.Name
	}
	parts := strings.Split(strings.TrimRight(id, "/"), "/")
	return parts[len(parts)-1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
