package azurecostmanagement

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

var (
	errRowTooShort  = errors.New("row shorter than resolved columns")
	errNoDateColumn = errors.New("date column unresolved")
)

// DailyCostResult is the outcome of mapping one row into a DailyCost
type DailyCostResult struct {
	Index  int
	Record model.DailyCost
	Err    error
}

// ResourceGroupCostResult is the outcome of mapping one row into a ResourceGroupCost
type ResourceGroupCostResult struct {
	Index  int
	Record model.ResourceGroupCost
	Err    error
}

// columnPlan holds the resolved positions for one response
type columnPlan struct {
	columns       []ColumnDescriptor
	date          Resolution
	hasDate       bool
	cost          Resolution
	hasCost       bool
	resourceGroup Resolution
	hasGroup      bool
}

type rowValues struct {
	date          any
	cost          any
	resourceGroup any
}

func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// MapDailyCosts maps every row, reporting per-row success or failure
func (n *Normalizer) MapDailyCosts(columns []ColumnDescriptor, rows [][]any) []DailyCostResult {
	plan := n.plan(columns, false)

	results := make([]DailyCostResult, 0, len(rows))
	var blank []int
	for i, row := range rows {
		vals, err := plan.read(row)
		if err != nil {
			results = append(results, DailyCostResult{Index: i, Err: err})
			continue
		}

		date, ok := formatDate(vals.date)
		if !ok {
			blank = append(blank, i)
		}

		results = append(results, DailyCostResult{
			Index: i,
			Record: model.DailyCost{
				UsageDate: date,
				Cost:      coerceCost(vals.cost),
			},
		})
	}
	n.warnBlankDates(plan, blank)
	return results
}

// MapResourceGroupCosts maps every row, reporting per-row success or failure
func (n *Normalizer) MapResourceGroupCosts(columns []ColumnDescriptor, rows [][]any) []ResourceGroupCostResult {
	plan := n.plan(columns, true)

	results := make([]ResourceGroupCostResult, 0, len(rows))
	var blank []int
	for i, row := range rows {
		vals, err := plan.read(row)
		if err != nil {
			results = append(results, ResourceGroupCostResult{Index: i, Err: err})
			continue
		}

		date, ok := formatDate(vals.date)
		if !ok {
			blank = append(blank, i)
		}

		results = append(results, ResourceGroupCostResult{
			Index: i,
			Record: model.ResourceGroupCost{
				Date:          date,
				ResourceGroup: formatResourceGroup(vals.resourceGroup),
				Cost:          coerceCost(vals.cost),
			},
		})
	}
	n.warnBlankDates(plan, blank)
	return results
}

// warnBlankDates logs rows whose date cell was read but held no value. Those rows are
// kept with an empty date; only rows that cannot be read at all are malformed.
func (n *Normalizer) warnBlankDates(plan columnPlan, rows []int) {
	if len(rows) == 0 {
		return
	}
	n.logger.Warn().
		Str("column", plan.date.Name).
		Ints("rows", rows).
		Msg("date value missing, reporting an empty date")
}

// NormalizeDailyCosts maps all rows or fails on the first malformed one
func (n *Normalizer) NormalizeDailyCosts(columns []ColumnDescriptor, rows [][]any) ([]model.DailyCost, error) {
	results := n.MapDailyCosts(columns, rows)

	costs := make([]model.DailyCost, 0, len(results))
	var malformed *MalformedRowError
	for _, r := range results {
		if r.Err != nil {
			malformed = recordFailure(malformed, r.Index, r.Err, len(rows))
			continue
		}
		costs = append(costs, r.Record)
	}

	if malformed != nil {
		return nil, malformed
	}
	return costs, nil
}

// NormalizeResourceGroupCosts maps all rows or fails on the first malformed one
func (n *Normalizer) NormalizeResourceGroupCosts(columns []ColumnDescriptor, rows [][]any) ([]model.ResourceGroupCost, error) {
	results := n.MapResourceGroupCosts(columns, rows)

	costs := make([]model.ResourceGroupCost, 0, len(results))
	var malformed *MalformedRowError
	for _, r := range results {
		if r.Err != nil {
			malformed = recordFailure(malformed, r.Index, r.Err, len(rows))
			continue
		}
		costs = append(costs, r.Record)
	}

	if malformed != nil {
		return nil, malformed
	}
	return costs, nil
}

func recordFailure(current *MalformedRowError, index int, err error, total int) *MalformedRowError {
	if current == nil {
		return &MalformedRowError{Index: index, Reason: err.Error(), Failed: 1, Total: total}
	}
	current.Failed++
	return current
}

func (n *Normalizer) plan(columns []ColumnDescriptor, withResourceGroup bool) columnPlan {
	p := columnPlan{columns: columns}
	names := ColumnNames(columns)

	p.date, p.hasDate = Resolve(columns, RoleDate)
	if p.hasDate && p.date.Match != MatchCanonicalName {
		n.logger.Warn().
			Strs("columns", names).
			Str("column", p.date.Name).
			Str("match", p.date.Match.String()).
			Msg("date column resolved without a canonical name")
	}

	p.cost, p.hasCost = Resolve(columns, RoleCost)
	if p.hasCost && p.cost.Degraded() {
		n.logger.Warn().
			Strs("columns", names).
			Str("column", p.cost.Name).
			Msg("cost column resolved by position")
	}

	if withResourceGroup {
		p.resourceGroup, p.hasGroup = Resolve(columns, RoleResourceGroup)
		if !p.hasGroup {
			n.logger.Warn().
				Strs("columns", names).
				Msg("resource group column unresolved, reporting Unknown")
		}
	}

	return p
}

// read extracts the resolved values from a row, first by position and then by
// rebuilding the row as a name-keyed record.
func (p columnPlan) read(row []any) (rowValues, error) {
	if !p.hasDate {
		return rowValues{}, errNoDateColumn
	}

	if vals, err := p.readPositional(row); err == nil {
		return vals, nil
	}
	return p.readByName(row)
}

func (p columnPlan) readPositional(row []any) (rowValues, error) {
	var vals rowValues

	if p.date.Index >= len(row) {
		return vals, errRowTooShort
	}
	vals.date = row[p.date.Index]

	if p.hasCost {
		if p.cost.Index >= len(row) {
			return vals, errRowTooShort
		}
		vals.cost = row[p.cost.Index]
	}

	if p.hasGroup {
		if p.resourceGroup.Index >= len(row) {
			return vals, errRowTooShort
		}
		vals.resourceGroup = row[p.resourceGroup.Index]
	}

	return vals, nil
}

func (p columnPlan) readByName(row []any) (rowValues, error) {
	record := make(map[string]any, len(row))
	for i := 0; i < len(p.columns) && i < len(row); i++ {
		record[columnName(p.columns[i])] = row[i]
	}

	var vals rowValues
	date, ok := record[p.date.Name]
	if !ok {
		return vals, fmt.Errorf("%w: no value for column %q in %d-value row", errRowTooShort, p.date.Name, len(row))
	}
	vals.date = date

	if p.hasCost {
		vals.cost = record[p.cost.Name]
	}
	if p.hasGroup {
		vals.resourceGroup = record[p.resourceGroup.Name]
	}

	return vals, nil
}

// coerceCost converts any upstream cost representation to float64; anything missing
// or non-numeric becomes 0.
func coerceCost(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case interface{ Float64() (float64, error) }:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// formatDate renders a date value. Numeric yyyymmdd values, which the Cost
// Management API returns for UsageDate, become yyyy-mm-dd.
func formatDate(v any) (string, bool) {
	switch d := v.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(d) == "" {
			return "", false
		}
		return d, true
	case time.Time:
		return d.UTC().Format(dateLayout), true
	case float64:
		return formatNumericDate(d), true
	case int:
		return formatNumericDate(float64(d)), true
	case int64:
		return formatNumericDate(float64(d)), true
	case interface{ Float64() (float64, error) }:
		f, err := d.Float64()
		if err != nil {
			return fmt.Sprint(v), true
		}
		return formatNumericDate(f), true
	default:
		return fmt.Sprint(v), true
	}
}

func formatNumericDate(f float64) string {
	n := int64(f)
	if float64(n) == f && n >= 19000101 && n <= 99991231 {
		year, month, day := n/10000, (n/100)%100, n%100
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatResourceGroup(v any) string {
	switch g := v.(type) {
	case nil:
		return model.UnknownResourceGroup
	case string:
		if strings.TrimSpace(g) == "" {
			return model.UnknownResourceGroup
		}
		return g
	default:
		return fmt.Sprint(v)
	}
}
