package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/response"
	azureconfig "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/config"
	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
	azureidentity "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/identity"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/flag"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service/orchestrator"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

func NewCostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Report last month's Azure costs in the terminal",
	}

	cmd.AddCommand(newReportCmd(model.ReportLastMonth, "Daily cost totals for last month"))
	cmd.AddCommand(newReportCmd(model.ReportByResourceGroup, "Last month's costs ranked by resource group"))
	cmd.AddCommand(newReportCmd(model.ReportSummary, "Total and average daily cost for last month"))
	cmd.AddCommand(newNormalizeCmd())

	return cmd
}

// newReportCmd queries Cost Management with the application's own credential
func newReportCmd(report, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   report,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			flags, err := flag.NewService(cmd.Flags()).GetParsedFlags(report, cfg.SubscriptionID)
			if err != nil {
				return err
			}

			cfgService, err := azureconfig.NewService(azureconfig.Options{
				SubscriptionID: flags.Subscription,
				TenantID:       cfg.TenantID,
				ClientID:       cfg.ClientID,
				ClientSecret:   cfg.ClientSecret,
			})
			if err != nil {
				return err
			}
			logger.Debug().Str("credential", cfgService.CredentialKind()).Msg("using application credential")

			costService, err := azurecostmanagement.NewService(flags.Subscription, cfgService.GetCredential(), logger)
			if err != nil {
				return err
			}

			identityService, err := azureidentity.NewService(flags.Subscription, cfgService.GetCredential(), logger)
			if err != nil {
				return err
			}

			utils.DrawBanner()
			utils.StartSpinner()
			defer utils.StopSpinner()

			return orchestrator.NewService(identityService, costService, cmd.OutOrStdout()).Orchestrate(cmd.Context(), flags)
		},
	}

	flag.Register(cmd.Flags())
	if report != model.ReportLastMonth {
		_ = cmd.Flags().MarkHidden(flag.FlagChart)
	}

	return cmd
}

// newNormalizeCmd runs the normalizer over a saved query result without calling Azure
func newNormalizeCmd() *cobra.Command {
	var (
		file            string
		byResourceGroup bool
		strict          bool
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a saved Cost Management query result",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}

			result, err := azurecostmanagement.DecodeQueryResult(data)
			if err != nil {
				return err
			}

			report := normalize(azurecostmanagement.NewNormalizer(logger), result, byResourceGroup)
			if strict && len(report.Malformed) > 0 {
				first := report.Malformed[0]
				return &azurecostmanagement.MalformedRowError{
					Index:  first.Index,
					Reason: first.Reason,
					Failed: len(report.Malformed),
					Total:  report.Rows,
				}
			}

			out, err := response.Marshal(report)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "query result JSON (bare {columns, rows} or full API response)")
	cmd.Flags().BoolVar(&byResourceGroup, "by-resource-group", false, "map rows to {date, resource_group, cost}")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any row is malformed")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func normalize(n *azurecostmanagement.Normalizer, result *azurecostmanagement.QueryResult, byResourceGroup bool) response.NormalizeReport {
	if byResourceGroup {
		return response.ConvertResourceGroupCostResults(n.MapResourceGroupCosts(result.Columns, result.Rows))
	}
	return response.ConvertDailyCostResults(n.MapDailyCosts(result.Columns, result.Rows))
}
