package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	azurecostmanagement "github.com/GaleasAndres/azure-cost-analytics-dashboard/service/azure/costmanagement"
)

const savedResult = `{
	"properties": {
		"columns": [
			{"name": "PreTaxCost", "type": "Number"},
			{"name": "UsageDate", "type": "Number"},
			{"name": "ResourceGroupName", "type": "String"},
			{"name": "Currency", "type": "String"}
		],
		"rows": [
			[1.5, 20241001, "rg-web", "USD"],
			[2.25, 20241001, "", "USD"],
			[3.0]
		]
	}
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeResult(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(savedResult), 0o600))
	return path
}

func TestNormalize_Daily(t *testing.T) {
	out, err := run(t, "costs", "normalize", "--file", writeResult(t))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"rows": 3,
		"mapped": 2,
		"malformed": [{"index": 2, "reason": "row shorter than resolved columns: no value for column \"UsageDate\" in 1-value row"}],
		"records": [
			{"UsageDate": "2024-10-01", "Cost": 1.5},
			{"UsageDate": "2024-10-01", "Cost": 2.25}
		]
	}`, out)
}

func TestNormalize_ByResourceGroup(t *testing.T) {
	out, err := run(t, "costs", "normalize", "--file", writeResult(t), "--by-resource-group")
	require.NoError(t, err)

	assert.Contains(t, out, `"resource_group": "rg-web"`)
	assert.Contains(t, out, `"resource_group": "Unknown"`)
}

func TestNormalize_Strict(t *testing.T) {
	_, err := run(t, "costs", "normalize", "--file", writeResult(t), "--strict")

	var malformed *azurecostmanagement.MalformedRowError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Index)
	assert.Equal(t, 1, malformed.Failed)
	assert.Equal(t, 3, malformed.Total)
}

func TestNormalize_RequiresFile(t *testing.T) {
	_, err := run(t, "costs", "normalize")
	assert.ErrorContains(t, err, "file")
}

func TestReport_RequiresSubscription(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")
	_, err := run(t, "costs", "summary")
	assert.ErrorContains(t, err, "AZURE_SUBSCRIPTION_ID")
}

func TestIdle_RequiresSubscription(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_ID", "")
	_, err := run(t, "idle")
	assert.ErrorContains(t, err, "AZURE_SUBSCRIPTION_ID")
}

func TestServe_ValidatesConfig(t *testing.T) {
	for _, key := range []string{"AZURE_CLIENT_ID", "AZURE_TENANT_ID", "AZURE_CLIENT_SECRET", "AZURE_REDIRECT_URI", "SESSION_SECRET", "FLASK_SECRET_KEY"} {
		t.Setenv(key, "")
	}
	_, err := run(t, "serve")
	assert.ErrorContains(t, err, "missing required configuration")
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"serve"},
		{"costs", "last-month"},
		{"costs", "by-resource-group"},
		{"costs", "summary"},
		{"costs", "normalize"},
		{"idle"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}
