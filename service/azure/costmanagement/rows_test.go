package azurecostmanagement

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GaleasAndres/azure-cost-analytics-dashboard/model"
)

func TestNormalizeResourceGroupCosts_PlainColumns(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeResourceGroupCosts(
		plain("UsageDate", "ResourceGroupName", "totalCost"),
		[][]any{{"2024-10-01", "rg1", 1.23}, {"2024-10-02", "rg1", 4.56}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.ResourceGroupCost{
		{Date: "2024-10-01", ResourceGroup: "rg1", Cost: 1.23},
		{Date: "2024-10-02", ResourceGroup: "rg1", Cost: 4.56},
	}, got)
}

func TestNormalizeDailyCosts_NonCanonicalDateName(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		plain("Date", "totalCost"),
		[][]any{{"2024-10-01", 1.0}, {"2024-10-02", 2.5}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.DailyCost{
		{UsageDate: "2024-10-01", Cost: 1.0},
		{UsageDate: "2024-10-02", Cost: 2.5},
	}, got)
}

func TestNormalize_TypedColumnsMatchPlainColumns(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())
	rows := [][]any{{"2024-10-01", "rg1", 3.14}, {"2024-10-02", "rg2", 6.28}}

	typed, err := n.NormalizeResourceGroupCosts([]ColumnDescriptor{
		TypedColumn{Name: "UsageDate", Type: ColumnTypeDatetime},
		TypedColumn{Name: "ResourceGroupName", Type: ColumnTypeString},
		TypedColumn{Name: "Cost", Type: ColumnTypeNumber},
	}, rows)
	require.NoError(t, err)

	bare, err := n.NormalizeResourceGroupCosts(plain("UsageDate", "ResourceGroupName", "Cost"), rows)
	require.NoError(t, err)

	assert.Equal(t, bare, typed)
	assert.Equal(t, []model.ResourceGroupCost{
		{Date: "2024-10-01", ResourceGroup: "rg1", Cost: 3.14},
		{Date: "2024-10-02", ResourceGroup: "rg2", Cost: 6.28},
	}, typed)
}

func TestNormalizeResourceGroupCosts_MissingGroupIsUnknown(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeResourceGroupCosts(
		plain("UsageDate", "ResourceGroupName", "Cost"),
		[][]any{{"2024-10-01", nil, 1.0}, {"2024-10-02", "", 2.0}, {"2024-10-03", "rg", 3.0}},
	)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.UnknownResourceGroup, got[0].ResourceGroup)
	assert.Equal(t, model.UnknownResourceGroup, got[1].ResourceGroup)
	assert.Equal(t, "rg", got[2].ResourceGroup)
}

func TestNormalizeResourceGroupCosts_UnresolvedGroupColumn(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeResourceGroupCosts(
		plain("UsageDate", "Cost"),
		[][]any{{"2024-10-01", 1.0}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.ResourceGroupCost{
		{Date: "2024-10-01", ResourceGroup: "Unknown", Cost: 1.0},
	}, got)
}

func TestNormalizeDailyCosts_CostCoercion(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		plain("UsageDate", "Cost"),
		[][]any{
			{"d1", "12.5"},
			{"d2", "n/a"},
			{"d3", nil},
			{"d4", int64(7)},
			{"d5", json.Number("0.25")},
			{"d6", true},
		},
	)
	require.NoError(t, err)

	costs := make([]float64, len(got))
	for i, c := range got {
		costs[i] = c.Cost
	}
	assert.Equal(t, []float64{12.5, 0, 0, 7, 0.25, 0}, costs)
}

func TestNormalizeDailyCosts_NumericUsageDate(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		[]ColumnDescriptor{
			TypedColumn{Name: "Cost", Type: ColumnTypeNumber},
			TypedColumn{Name: "UsageDate", Type: ColumnTypeNumber},
			TypedColumn{Name: "Currency", Type: ColumnTypeString},
		},
		[][]any{{4.2, float64(20241001), "USD"}, {1.0, 12.5, "USD"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-01", got[0].UsageDate)
	assert.Equal(t, 4.2, got[0].Cost)
	assert.Equal(t, "12.5", got[1].UsageDate)
}

func TestNormalizeDailyCosts_PreservesOrder(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		plain("UsageDate", "Cost"),
		[][]any{{"2024-10-03", 3.0}, {"2024-10-01", 1.0}, {"2024-10-03", 3.0}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.DailyCost{
		{UsageDate: "2024-10-03", Cost: 3.0},
		{UsageDate: "2024-10-01", Cost: 1.0},
		{UsageDate: "2024-10-03", Cost: 3.0},
	}, got)
}

func TestMapDailyCosts_TruncatedRowFallsBackToNames(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	// The cost column sits past the end of the second row; the name-keyed
	// reconstruction still finds the date and the cost defaults to zero.
	results := n.MapDailyCosts(
		plain("UsageDate", "Currency", "Cost"),
		[][]any{{"2024-10-01", "USD", 2.0}, {"2024-10-02", "USD"}},
	)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)
	assert.Equal(t, model.DailyCost{UsageDate: "2024-10-02", Cost: 0}, results[1].Record)
}

func TestMapDailyCosts_ReportsPerRowFailures(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	results := n.MapDailyCosts(
		plain("Cost", "UsageDate"),
		[][]any{{1.0, "2024-10-01"}, {2.0}, nil, {3.0, nil}},
	)
	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, errRowTooShort)
	assert.ErrorIs(t, results[2].Err, errRowTooShort)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, model.DailyCost{UsageDate: "", Cost: 3}, results[3].Record)
}

func TestNormalizeDailyCosts_BlankDateIsKept(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		plain("UsageDate", "Cost"),
		[][]any{{"2024-10-01", 1.0}, {nil, 2.0}, {"  ", 0.5}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.DailyCost{
		{UsageDate: "2024-10-01", Cost: 1},
		{UsageDate: "", Cost: 2},
		{UsageDate: "", Cost: 0.5},
	}, got)
}

func TestNormalizeResourceGroupCosts_BlankDateIsKept(t *testing.T) {
	var logs bytes.Buffer
	n := NewNormalizer(zerolog.New(&logs))

	got, err := n.NormalizeResourceGroupCosts(
		plain("UsageDate", "ResourceGroupName", "Cost"),
		[][]any{{"", "rg-web", 4.0}},
	)
	require.NoError(t, err)
	assert.Equal(t, []model.ResourceGroupCost{{Date: "", ResourceGroup: "rg-web", Cost: 4}}, got)
	assert.Contains(t, logs.String(), "date value missing")
	assert.Contains(t, logs.String(), `"rows":[0]`)
}

func TestNormalizeDailyCosts_MalformedRowAbortsCall(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	got, err := n.NormalizeDailyCosts(
		plain("Cost", "UsageDate"),
		[][]any{{1.0, "2024-10-01"}, {2.0}, {3.0}},
	)
	assert.Nil(t, got)

	var malformed *MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Index)
	assert.Equal(t, 2, malformed.Failed)
	assert.Equal(t, 3, malformed.Total)
	assert.Contains(t, err.Error(), "malformed row 1")
}

func TestNormalize_NoColumns(t *testing.T) {
	n := NewNormalizer(zerolog.Nop())

	empty, err := n.NormalizeDailyCosts(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = n.NormalizeDailyCosts(nil, [][]any{{"2024-10-01", 1.0}})
	var malformed *MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, errNoDateColumn.Error(), malformed.Reason)
}
