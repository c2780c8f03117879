package utils

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

func DrawIdleResourcesTable(account string, idle *model.IdleResources) {
	fmt.Println(RenderIdleResourcesTable(account, idle))
}

// RenderIdleResourcesTable lists every idle resource grouped by kind
func RenderIdleResourcesTable(account string, idle *model.IdleResources) string {
	tw := table.NewWriter()
	tw.SetTitle("%s", text.FgBlue.Sprint(account))
	tw.AppendHeader(table.Row{"Kind", "Name", "Resource Group", "Detail"})

	if idle == nil {
		idle = &model.IdleResources{}
	}

	count := 0
	for _, disk := range idle.UnattachedDisks {
		tw.AppendRow(table.Row{"Unattached disk", disk.Name, disk.ResourceGroup, fmt.Sprintf("%d GB %s", disk.SizeGB, disk.SKU)})
		count++
	}
	for _, vm := range idle.DeallocatedVMs {
		detail := fmt.Sprintf("%s, %d GB held", vm.Size, vm.DiskSizeGB)
		if len(vm.Disks) > 0 {
			detail += " (" + strings.Join(vm.Disks, ", ") + ")"
		}
		tw.AppendRow(table.Row{"Deallocated VM", vm.Name, vm.ResourceGroup, detail})
		count++
	}
	for _, ip := range idle.UnassociatedPublicIPs {
		tw.AppendRow(table.Row{"Public IP", ip.Name, ip.ResourceGroup, ip.Address})
		count++
	}
	for _, r := range idle.ExpiringReservations {
		detail := text.FgYellow.Sprintf("expires %s (%d days)", r.ExpiryDate, r.DaysUntilExpiry)
		if r.Status == model.ReservationExpired {
			detail = text.FgRed.Sprintf("expired %s", r.ExpiryDate)
		}
		tw.AppendRow(table.Row{"Reservation", r.DisplayName, "", detail})
		count++
	}

	if count == 0 {
		tw.AppendRow(table.Row{text.FgGreen.Sprint("No idle resources found"), "", "", ""})
	}

	tw.AppendFooter(table.Row{"Total", count, "", ""})
	tw.SetStyle(table.StyleRounded)
	return tw.Render()
}
