package orchestrator

import (
	"context"
	"io"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
	"github.com/GaleasAndres/azure-cost-analytics-dashboard/service"
)

type orchestratorService struct {
	identityService service.IdentityService
	costService     service.CostService
	out             io.Writer
}

type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
