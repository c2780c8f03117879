package azurecostmanagement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

// ErrUpstreamQuery marks failures of the Cost Management query call itself
var ErrUpstreamQuery = errors.New("cost management query failed")

// QueryAPI is the subset of armcostmanagement.QueryClient we use
type QueryAPI interface {
	Usage(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error)
}

type service struct {
	subscriptionID string
	client         QueryAPI
	normalizer     *Normalizer
	logger         zerolog.Logger
	now            func() time.Time
}

type CostManagementService interface {
	GetLastMonthDailyCosts(ctx context.Context) ([]model.DailyCost, error)
	GetLastMonthCostsByResourceGroup(ctx context.Context) ([]model.ResourceGroupCost, error)
	GetLastMonthSummary(ctx context.Context) (*model.CostSummary, error)
	LastMonthWindow() Window
}

// Normalizer maps heterogeneous query results onto the stable output records
type Normalizer struct {
	logger zerolog.Logger
}

// Window is the reporting interval sent to the query API
type Window struct {
	Start time.Time
	End   time.Time
}

// MalformedRowError reports a row that could be mapped neither by position nor by name.
// Index and Reason describe the first failing row.
type MalformedRowError struct {
	Index  int
	Reason string
	Failed int
	Total  int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row %d: %s (%d of %d rows failed)", e.Index, e.Reason, e.Failed, e.Total)
}

// QueryResult is a decoded upstream result, used when normalizing saved responses
type QueryResult struct {
	Columns []ColumnDescriptor
	Rows    [][]any
}
