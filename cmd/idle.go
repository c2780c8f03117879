package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	azureconfig "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/config"
	azurecompute "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/compute"
	azureidentity "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/identity"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/flag"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

// NewIdleCmd scans a subscription for resources that bill without doing work
func NewIdleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idle",
		Short: "List unattached disks, deallocated VMs, spare public IPs and expiring reservations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			subscription, err := flag.NewService(cmd.Flags()).GetSubscription(cfg.SubscriptionID)
			if err != nil {
				return err
			}

			cfgService, err := azureconfig.NewService(azureconfig.Options{
				SubscriptionID: subscription,
				TenantID:       cfg.TenantID,
				ClientID:       cfg.ClientID,
				ClientSecret:   cfg.ClientSecret,
			})
			if err != nil {
				return err
			}

			computeService, err := azurecompute.NewService(subscription, cfgService.GetCredential(), logger)
			if err != nil {
				return err
			}

			identityService, err := azureidentity.NewService(subscription, cfgService.GetCredential(), logger)
			if err != nil {
				return err
			}

			utils.DrawBanner()
			utils.StartSpinner()
			defer utils.StopSpinner()

			idle, err := computeService.GetIdleResources(cmd.Context())
			if err != nil {
				return err
			}

			info, err := identityService.GetAccountInfo(cmd.Context())
			if err != nil {
				return err
			}

			utils.StopSpinner()
			fmt.Fprintln(cmd.OutOrStdout(), utils.RenderIdleResourcesTable(info.AccountName, idle))
			return nil
		},
	}

	flag.RegisterSubscription(cmd.Flags())
	return cmd
}
