package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/utils"
)

func NewService(identityService service.IdentityService, costService service.CostService, out io.Writer) *orchestratorService {
	return &orchestratorService{
		identityService: identityService,
		costService:     costService,
		out:             out,
	}
}

// Orchestrate runs the report selected by flags and renders it to the output
func (s *orchestratorService) Orchestrate(ctx context.Context, flags model.Flags) error {
	switch flags.Report {
	case model.ReportByResourceGroup:
		return s.resourceGroupWorkflow(ctx)
	case model.ReportSummary:
		return s.summaryWorkflow(ctx)
	case model.ReportLastMonth, "":
		return s.lastMonthWorkflow(ctx, flags.Chart)
	default:
		return fmt.Errorf("unknown report %q", flags.Report)
	}
}

func (s *orchestratorService) lastMonthWorkflow(ctx context.Context, chart bool) error {
	costs, err := s.costService.GetLastMonthDailyCosts(ctx)
	if err != nil {
		return err
	}

	account, err := s.accountName(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	if chart {
		fmt.Fprintf(s.out, " Subscription: %s\n\n", account)
		fmt.Fprintln(s.out, utils.RenderDailyCostChart(costs, 130, 20))
		return nil
	}

	fmt.Fprintln(s.out, utils.RenderDailyCostTable(account, costs))
	return nil
}

func (s *orchestratorService) resourceGroupWorkflow(ctx context.Context) error {
	costs, err := s.costService.GetLastMonthCostsByResourceGroup(ctx)
	if err != nil {
		return err
	}

	account, err := s.accountName(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	fmt.Fprintln(s.out, utils.RenderResourceGroupCostTable(account, costs))
	return nil
}

func (s *orchestratorService) summaryWorkflow(ctx context.Context) error {
	summary, err := s.costService.GetLastMonthSummary(ctx)
	if err != nil {
		return err
	}

	account, err := s.accountName(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	fmt.Fprintln(s.out, utils.RenderSummaryTable(account, summary))
	return nil
}

func (s *orchestratorService) accountName(ctx context.Context) (string, error) {
	info, err := s.identityService.GetAccountInfo(ctx)
	if err != nil {
		return "", err
	}
	return info.AccountName, nil
}
